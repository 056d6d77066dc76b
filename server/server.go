package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/imharvol/cienciathon-2021/config"
	"github.com/imharvol/cienciathon-2021/server/api"
	"github.com/imharvol/cienciathon-2021/server/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler
}

func New(cfg *config.Config, queue api.Queue) (*Server, error) {
	apiHandler, err := api.New(cfg, queue)

	if err != nil {
		return nil, err
	}

	webHandler, err := web.New(cfg)

	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	s := &Server{
		Config:  cfg,
		Handler: r,
	}

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.handleAuth)

		r.Route("/api", apiHandler.Attach)
		webHandler.Attach(r)
	})

	return s, nil
}

// ListenAndServe serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.Address,
		Handler: otelhttp.NewHandler(s.Handler, "http"),

		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if len(s.Authorizers) > 0 {
			var err error

			for _, a := range s.Authorizers {
				var authCtx context.Context

				if authCtx, err = a.Authenticate(ctx, r); err == nil {
					ctx = authCtx
					break
				}
			}

			if err != nil {
				slog.Debug("unauthorized request", "path", r.URL.Path, "error", err)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
