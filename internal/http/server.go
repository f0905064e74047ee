package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"spendtrack/internal/auth"
	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
	appweb "spendtrack/web"

	"spendtrack/internal/core"
)

type Server struct {
	http.Server
	templates *template.Template
	sessions  *auth.Sessions
	auth      *auth.Service
	expenses  *services.ExpenseService
	users     *storage.SQLiteRepository
	logger    *applog.Logger
}

// NewServer wires routes, middleware and templates into a ready-to-run server.
func NewServer(addr string, sessions *auth.Sessions, authSvc *auth.Service, expenses *services.ExpenseService, users *storage.SQLiteRepository, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		Server:   http.Server{Addr: addr},
		sessions: sessions,
		auth:     authSvc,
		expenses: expenses,
		users:    users,
		logger:   logger,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(applog.Middleware(logger))
	r.Use(securityHeaders)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Handle("/static/*", static)
	} else {
		logger.Error("failed to mount embedded static FS", applog.FieldError, err)
	}

	// Anonymous pages.
	r.Get("/signup", s.handleSignUpForm)
	r.Post("/signup", s.handleSignUp)
	r.Get("/login", s.handleLogInForm)
	r.Post("/login", s.handleLogIn)

	// Everything else requires a session.
	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/", s.handleDashboard)
		r.Post("/budget", s.handleBudgetUpdate)
		r.Get("/charts/weekly.png", s.handleWeeklyChart)
		r.Get("/charts/category.png", s.handleCategoryChart)

		r.Get("/expenses/new", s.handleExpenseForm)
		r.Post("/expenses/new", s.handleExpenseCreate)
		r.Get("/expenses/{id}/edit", s.handleExpenseEditForm)
		r.Post("/expenses/{id}/edit", s.handleExpenseEdit)
		r.Post("/expenses/{id}/delete", s.handleExpenseDelete)

		r.Get("/profile", s.handleProfileForm)
		r.Post("/profile", s.handleProfileUpdate)

		r.Get("/logout", s.handleLogOut)
		r.Post("/logout", s.handleLogOut)
		r.Get("/account/delete", s.handleDeleteAccountConfirm)
		r.Post("/account/delete", s.handleDeleteAccount)
	})

	s.Handler = r
	return s
}

type contextKey string

const userContextKey contextKey = "current_user"

// requireUser resolves the session to a full user record and stashes it in
// the request context. Anonymous requests get bounced to the login page.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessions.UserID(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		user, err := s.auth.CurrentUser(r.Context(), id)
		if err != nil {
			// Account deleted since the cookie was issued.
			s.sessions.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) core.User {
	u, _ := r.Context().Value(userContextKey).(core.User)
	return u
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes a page template, falling back to a 500 when templates are
// broken.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "template execution failed",
			"template", name, applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
