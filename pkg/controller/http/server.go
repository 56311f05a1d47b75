package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/utils/errutil"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
)

// DefaultPageSize is the number of top-level messages per page.
const DefaultPageSize = 50

// Server exposes the archive as a read-only JSON API plus the
// downloaded media files.
type Server struct {
	router   *chi.Mux
	repo     interfaces.Repository
	mediaDir string
	pageSize int
}

type Options func(*Server)

// WithPageSize overrides the default message page size.
func WithPageSize(size int) Options {
	return func(s *Server) {
		s.pageSize = size
	}
}

func New(repo interfaces.Repository, mediaDir string, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		repo:     repo,
		mediaDir: mediaDir,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/workspace", s.workspaceHandler())
		r.Get("/channels", s.channelsHandler())
		r.Get("/channels/{channel}/messages", s.messagesHandler())
		r.Get("/threads/{ts}", s.threadHandler())
		r.Get("/users", s.usersHandler())
		r.Get("/emoji", s.emojiHandler())
	})

	// Avatars, file attachments and emoji images straight from the
	// data directory.
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}
