package httpserver

import "net/http"

// Routes groups handlers. Metrics and Health are open; the trigger endpoints
// go through the auth middleware.
type Routes struct {
	Health            http.HandlerFunc
	Metrics           http.Handler
	SubmitApplication http.HandlerFunc
	WeeklyReport      http.HandlerFunc
}

// NewRouter registers endpoints. auth wraps the ad-hoc trigger routes.
func NewRouter(routes Routes, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	if routes.SubmitApplication != nil {
		mux.Handle("/internal/jobs/applications", auth(method(http.MethodPost, routes.SubmitApplication)))
	}
	if routes.WeeklyReport != nil {
		mux.Handle("/internal/jobs/weekly-report", auth(method(http.MethodPost, routes.WeeklyReport)))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
