package wire

import (
	"net/http"
	"strings"
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds handlers on top of the service layer and mounts every route
func Wiring(repo *repository.Repository, service *usecase.Service, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router: setupRouter(handler, repo, config, logger),
	}
}

// guards are the auth middlewares shared by every resource
type guards struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Get("/health", adaptor.HealthCheck(time.Now()))

	// images written by the disk store
	if config.Upload.CloudinaryURL == "" {
		dir := http.Dir(strings.TrimSuffix(config.Upload.Dir, "/"))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(dir)))
	}

	g := guards{
		auth:  middleware.AuthSession(repo.Session, repo.User, logger),
		admin: middleware.Admin(logger),
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.APIKey, logger))

		wireAuth(r, handler.Auth, g)
		wireUser(r, handler.User, g)
		wireCatalog(r, handler.Catalog, g)
		wireCart(r, handler.Cart, g)
		wireTransaction(r, handler.Transaction, g)
		wireReview(r, handler.Review, g)
		wireUpload(r, handler.Upload, g)
	})

	return r
}
