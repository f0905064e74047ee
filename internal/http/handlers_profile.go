package http

import (
	"net/http"

	"spendtrack/internal/core"
	applog "spendtrack/internal/log"
)

type profileView struct {
	Error         string
	Name          string
	Email         string
	Phone         string
	MonthlyBudget string
	Flashes       []string
}

func (s *Server) handleProfileForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	s.render(w, r, "profile.html", profileView{
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		MonthlyBudget: user.MonthlyBudget.String(),
		Flashes:       s.sessions.Flashes(w, r),
	})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	view := profileView{
		Name:          sanitizeInput(r.Form.Get("name")),
		Email:         sanitizeInput(r.Form.Get("email")),
		Phone:         sanitizeInput(r.Form.Get("phone")),
		MonthlyBudget: sanitizeInput(r.Form.Get("monthly_budget")),
	}

	budget, err := core.ParseBudget(view.MonthlyBudget)
	if err != nil {
		view.Error = err.Error()
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "profile.html", view)
		return
	}

	updated := user
	updated.Name = view.Name
	updated.Email = view.Email
	updated.Phone = view.Phone
	updated.MonthlyBudget = budget

	if err := updated.Validate(); err != nil {
		view.Error = err.Error()
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "profile.html", view)
		return
	}

	if err := s.users.UpdateProfile(r.Context(), updated); err != nil {
		switch err {
		case core.ErrEmailTaken, core.ErrPhoneTaken:
			view.Error = err.Error()
			s.renderStatus(w, r, http.StatusUnprocessableEntity, "profile.html", view)
		default:
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to update profile",
				applog.FieldUserID, user.ID, applog.FieldError, err)
			http.Error(w, "could not update profile", http.StatusInternalServerError)
		}
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "profile updated",
		applog.FieldUserID, user.ID, applog.FieldOperation, applog.OpUpdate)
	s.sessions.Flash(w, r, "Profile updated.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
