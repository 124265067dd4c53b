package app

import (
	"apiforge/internal/config"
	"apiforge/internal/db"
	"apiforge/internal/handlers"
	"apiforge/internal/repository"
	"apiforge/internal/routes"
	"apiforge/internal/services"
	"apiforge/internal/web"
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repos struct {
	Users          repository.UserRepo
	Projects       repository.ProjectRepo
	Endpoints      repository.EndpointRepo
	PasswordResets repository.PasswordResetRepo
}

func NewPostgresRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Users:          repository.NewUserRepository(pool),
		Projects:       repository.NewProjectRepository(pool),
		Endpoints:      repository.NewEndpointRepository(pool),
		PasswordResets: repository.NewPasswordResetRepository(pool),
	}
}

// InitApp подключается к базе, применяет схему и собирает роутер.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	pool, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	router := NewRouter(cfg, NewPostgresRepos(pool), services.NewMailer(cfg))
	return router, pool.Close, nil
}

// NewRouter собирает сервисы, хендлеры и маршруты поверх переданных репозиториев.
func NewRouter(cfg *config.Config, repos Repos, mailer services.Mailer) *mux.Router {
	// Сервисы
	authService := services.NewAuthService(repos.Users, cfg.JWTSecret, cfg.SessionDuration())
	passwordService := services.NewPasswordService(repos.Users, repos.PasswordResets, mailer, cfg.AppURL, cfg.ResetTokenDuration())
	projectService := services.NewProjectService(repos.Projects, repos.Endpoints)

	// Хендлеры
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, cfg.SessionCookie, cfg.Env == "prod", cfg.SessionDuration()),
		Password: handlers.NewPasswordHandler(passwordService),
		Project:  handlers.NewProjectHandler(projectService),
		Web:      web.NewHandler(),
	}

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authService, cfg.SessionCookie, h)
	return router
}
