// Package server wires a csrf.Protector into a small chi application used by
// csrfd: a login form, a protected transfer form and the token endpoint.
package server

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
)

// Options configure the application routes.
type Options struct {
	SessionCookie string
	Logger        *slog.Logger
	Gatherer      prometheus.Gatherer // if nil, /metrics is not mounted
}

var page = template.Must(template.New("page").Parse(`<!doctype html>
<html><body>
{{if .User}}
<p>Signed in, session {{.User}}</p>
<form method="post" action="/transfer">
  {{.CSRFField}}
  <input name="amount" value="10">
  <button>Transfer</button>
</form>
{{else}}
<form method="post" action="/login">
  <button>Sign in</button>
</form>
{{end}}
</body></html>
`))

// NewRouter returns the application handler. p must resolve identities from
// the session cookie named in opts, and must exempt /login from verification.
func NewRouter(p *csrf.Protector, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(p.Protect)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			var user string
			if c, err := r.Cookie(opts.SessionCookie); err == nil {
				user = c.Value
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			err := page.Execute(w, map[string]any{
				"User":      user,
				"CSRFField": p.TemplateField(r),
			})
			if err != nil {
				log.Error("render page", "error", err)
			}
		})

		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{
				Name:     opts.SessionCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			http.Redirect(w, r, "/", http.StatusSeeOther)
		})

		r.Post("/transfer", func(w http.ResponseWriter, r *http.Request) {
			// if we got here, the token was valid
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("ok"))
		})

		r.Get("/csrf-token", p.TokenHandler().ServeHTTP)
	})

	return r
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
