package http

import (
	"net/http"
	"strings"
	"time"

	applog "spendtrack/internal/log"
	"spendtrack/internal/storage"
)

// parseFilter reads the dashboard query parameters. Bad dates are treated as
// absent; the storage layer ignores half-open ranges and unknown sort keys.
func parseFilter(r *http.Request) storage.Filter {
	q := r.URL.Query()
	f := storage.Filter{
		Category: sanitizeInput(q.Get("category")),
		SortBy:   strings.TrimSpace(q.Get("sort_by")),
	}
	if d, err := parseDate(q.Get("start_date")); err == nil {
		f.StartDate = d
	}
	if d, err := parseDate(q.Get("end_date")); err == nil {
		f.EndDate = d
	}
	return f
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(dateStr))
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// renderStatus is render with an explicit status code, used when a form comes
// back with validation errors.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "template execution failed",
			"template", name, applog.FieldError, err)
	}
}
