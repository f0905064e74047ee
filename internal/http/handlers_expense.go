package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"spendtrack/internal/core"
	applog "spendtrack/internal/log"
)

type expenseFormView struct {
	Error    string
	ID       int64
	Title    string
	Amount   string
	Category string
	Date     string
}

func (s *Server) handleExpenseForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "expense_form.html", expenseFormView{
		Date: time.Now().Format("2006-01-02"),
	})
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	view := expenseFormViewFromForm(r)
	e, err := expenseFromForm(r, user.ID)
	if err == nil {
		err = s.expenses.Create(r.Context(), &e)
	}
	if err != nil {
		view.Error = err.Error()
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "expense_form.html", view)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "expense created",
		applog.FieldUserID, user.ID, applog.FieldExpenseID, e.ID,
		applog.FieldAmountCents, e.Amount.Cents, applog.FieldCategory, e.Category,
		applog.FieldOperation, applog.OpCreate)
	s.sessions.Flash(w, r, "Expense added.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExpenseEditForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, ok := expenseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	e, err := s.expenses.Get(r.Context(), id, user.ID)
	if err != nil {
		// Missing or owned by someone else; both look the same.
		http.NotFound(w, r)
		return
	}

	s.render(w, r, "expense_form.html", expenseFormView{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount.String(),
		Category: e.Category,
		Date:     e.Date.Format("2006-01-02"),
	})
}

func (s *Server) handleExpenseEdit(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, ok := expenseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.expenses.Get(r.Context(), id, user.ID); err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	view := expenseFormViewFromForm(r)
	view.ID = id

	e, err := expenseFromForm(r, user.ID)
	if err == nil {
		e.ID = id
		err = s.expenses.Update(r.Context(), e)
	}
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		view.Error = err.Error()
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "expense_form.html", view)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "expense updated",
		applog.FieldUserID, user.ID, applog.FieldExpenseID, id,
		applog.FieldOperation, applog.OpUpdate)
	s.sessions.Flash(w, r, "Expense updated.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, ok := expenseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.expenses.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to delete expense",
			applog.FieldUserID, user.ID, applog.FieldExpenseID, id, applog.FieldError, err)
		http.Error(w, "could not delete expense", http.StatusInternalServerError)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "expense deleted",
		applog.FieldUserID, user.ID, applog.FieldExpenseID, id,
		applog.FieldOperation, applog.OpDelete)
	s.sessions.Flash(w, r, "Expense deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func expenseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func expenseFormViewFromForm(r *http.Request) expenseFormView {
	return expenseFormView{
		Title:    sanitizeInput(r.Form.Get("title")),
		Amount:   sanitizeInput(r.Form.Get("amount")),
		Category: sanitizeInput(r.Form.Get("category")),
		Date:     sanitizeInput(r.Form.Get("date")),
	}
}

// expenseFromForm builds an expense from the submitted fields. Amount and date
// errors are reported before storage is touched.
func expenseFromForm(r *http.Request, userID int64) (core.Expense, error) {
	amount, err := core.ParseAmount(sanitizeInput(r.Form.Get("amount")))
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(r.Form.Get("date"))
	if err != nil {
		return core.Expense{}, core.ErrInvalidDate
	}
	return core.Expense{
		UserID:   userID,
		Title:    sanitizeInput(r.Form.Get("title")),
		Amount:   amount,
		Category: sanitizeInput(r.Form.Get("category")),
		Date:     date,
	}, nil
}
