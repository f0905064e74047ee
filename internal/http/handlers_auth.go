package http

import (
	"net/http"

	"spendtrack/internal/auth"
	applog "spendtrack/internal/log"
)

type signUpView struct {
	Error   string
	Name    string
	Email   string
	Phone   string
	Flashes []string
}

type logInView struct {
	Error      string
	Identifier string
	Flashes    []string
}

func (s *Server) handleSignUpForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", signUpView{Flashes: s.sessions.Flashes(w, r)})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	in := signUpInputFromForm(r)
	user, err := s.auth.SignUp(r.Context(), in)
	if err != nil {
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "signup.html", signUpView{
			Error: err.Error(),
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
		})
		return
	}

	if err := s.sessions.SignIn(w, r, user.ID); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to start session",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "account created",
		applog.FieldUserID, user.ID, applog.FieldOperation, applog.OpSignUp)
	s.sessions.Flash(w, r, "Account created successfully.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogInForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", logInView{Flashes: s.sessions.Flashes(w, r)})
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	identifier := sanitizeInput(r.Form.Get("email_or_phone"))
	user, err := s.auth.LogIn(r.Context(), identifier, r.Form.Get("password"))
	if err != nil {
		// The error text is the form-level message ("User not found" or
		// "Invalid credentials").
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "login.html", logInView{
			Error:      err.Error(),
			Identifier: identifier,
		})
		return
	}

	if err := s.sessions.SignIn(w, r, user.ID); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to start session",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "user logged in",
		applog.FieldUserID, user.ID, applog.FieldOperation, applog.OpLogIn)
	s.sessions.Flash(w, r, "Logged in successfully.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogOut(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	s.sessions.SignOut(w, r)
	s.sessions.Flash(w, r, "You have been logged out.")

	applog.FromContext(r.Context()).InfoContext(r.Context(), "user logged out",
		applog.FieldUserID, user.ID, applog.FieldOperation, applog.OpLogOut)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleDeleteAccountConfirm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "delete_account.html", struct{ Email string }{Email: currentUser(r).Email})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := s.auth.DeleteAccount(r.Context(), user.ID); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to delete account",
			applog.FieldUserID, user.ID, applog.FieldError, err)
		http.Error(w, "could not delete account", http.StatusInternalServerError)
		return
	}

	s.sessions.SignOut(w, r)
	s.sessions.Flash(w, r, "Your account has been deleted.")

	applog.FromContext(r.Context()).InfoContext(r.Context(), "account deleted",
		applog.FieldUserID, user.ID, applog.FieldOperation, applog.OpDelete)
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

func signUpInputFromForm(r *http.Request) auth.SignUpInput {
	return auth.SignUpInput{
		Name:      sanitizeInput(r.Form.Get("name")),
		Email:     sanitizeInput(r.Form.Get("email")),
		Phone:     sanitizeInput(r.Form.Get("phone")),
		Password1: r.Form.Get("password1"),
		Password2: r.Form.Get("password2"),
	}
}
