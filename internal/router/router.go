package router

import (
	"net/http"

	_ "daycare-log/docs"
	"daycare-log/internal/adapters/storage"
	"daycare-log/internal/adapters/storage/memory"
	"daycare-log/internal/domain/access"
	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/classrooms"
	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/middleware"
	"daycare-log/internal/ports/auth"
	"daycare-log/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       *zap.Logger

	// Opcional: si viene vacío, usa un store in-memory.
	Repos storage.Repositories
}

// Services por módulo. Se arman una vez y los comparten router y seed.
type Services struct {
	Users      *users.Service
	Classrooms *classrooms.Service
	Children   *children.Service
	Events     *events.Service
}

func NewServices(repos storage.Repositories, logger *zap.Logger) Services {
	classroomsSvc := classrooms.NewService(repos.Classrooms)
	return Services{
		Users:      users.NewService(repos.Users),
		Classrooms: classroomsSvc,
		Children:   children.NewService(repos.Children, classroomsSvc),
		Events:     events.NewService(repos.Events, logger),
	}
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	repos := opts.Repos
	if repos.Events == nil {
		repos = storage.From(memory.NewStore())
	}
	svcs := NewServices(repos, logger)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(session.Middleware(svcs.Users))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	users.RegisterRoutes(r, svcs.Users)
	classrooms.RegisterRoutes(r, svcs.Classrooms)
	children.RegisterRoutes(r, svcs.Children)
	events.RegisterRoutes(r, svcs.Events, svcs.Children)
	access.RegisterRoutes(r)

	return r
}
