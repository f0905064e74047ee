package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"spendtrack/internal/charts"
	"spendtrack/internal/core"
	applog "spendtrack/internal/log"
	"spendtrack/internal/stats"
)

type dashboardView struct {
	User     core.User
	Expenses []core.Expense
	Summary  stats.Summary
	Flashes  []string

	// Echoed filter values so the form keeps its state across reloads, and
	// the raw query string so the chart image URLs reuse the same filter.
	Category  string
	StartDate string
	EndDate   string
	SortBy    string
	RawQuery  string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	filter := parseFilter(r)

	expenses, err := s.expenses.List(r.Context(), user.ID, filter)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to list expenses",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "could not load expenses", http.StatusInternalServerError)
		return
	}

	summary := stats.Summarize(expenses, user.MonthlyBudget, time.Now())

	s.render(w, r, "dashboard.html", dashboardView{
		User:      user,
		Expenses:  expenses,
		Summary:   summary,
		Flashes:   s.sessions.Flashes(w, r),
		Category:  filter.Category,
		StartDate: formValue(filter.StartDate),
		EndDate:   formValue(filter.EndDate),
		SortBy:    filter.SortBy,
		RawQuery:  r.URL.RawQuery,
	})
}

// handleBudgetUpdate sets the monthly budget. Invalid input leaves the stored
// budget untouched and tells the user what went wrong instead of failing
// silently.
func (s *Server) handleBudgetUpdate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	budget, err := core.ParseBudget(sanitizeInput(r.Form.Get("monthly_budget")))
	if err != nil {
		s.sessions.Flash(w, r, "Budget not updated: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := s.users.UpdateBudget(r.Context(), user.ID, budget); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to update budget",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "could not update budget", http.StatusInternalServerError)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "budget updated",
		applog.FieldUserID, user.ID, applog.FieldAmountCents, budget.Cents,
		applog.FieldOperation, applog.OpUpdate)
	s.sessions.Flash(w, r, "Budget updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleWeeklyChart(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.chartSummary(w, r)
	if !ok {
		return
	}
	png, err := charts.WeeklyLine(summary.Weekly)
	s.writeChart(w, r, png, err)
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.chartSummary(w, r)
	if !ok {
		return
	}
	png, err := charts.CategoryDonut(summary.ByCategory)
	s.writeChart(w, r, png, err)
}

// chartSummary recomputes the summary for the requesting user and filter.
// Each request draws from its own data; a 404 means there is nothing to show
// for this filter.
func (s *Server) chartSummary(w http.ResponseWriter, r *http.Request) (stats.Summary, bool) {
	user := currentUser(r)

	expenses, err := s.expenses.List(r.Context(), user.ID, parseFilter(r))
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to list expenses for chart",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "could not load expenses", http.StatusInternalServerError)
		return stats.Summary{}, false
	}

	summary := stats.Summarize(expenses, user.MonthlyBudget, time.Now())
	if !summary.HasCharts() {
		http.NotFound(w, r)
		return stats.Summary{}, false
	}
	return summary, true
}

func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, png []byte, err error) {
	if err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "chart rendering failed",
			applog.FieldError, err, applog.FieldOperation, applog.OpRender)
		http.Error(w, "could not render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func formValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
