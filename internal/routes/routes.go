package routes

import (
	"apiforge/internal/handlers"
	"apiforge/internal/middleware"
	"apiforge/internal/web"
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Password *handlers.PasswordHandler
	Project  *handlers.ProjectHandler
	Web      *web.Handler
}

func InitRoutes(router *mux.Router, sessions middleware.SessionParser, cookieName string, h Handlers) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/password/forgot", h.Password.Forgot).Methods(http.MethodPost)
	api.HandleFunc("/password/reset", h.Password.Reset).Methods(http.MethodPost)

	// --- Только с сессией ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.SessionAuth(sessions, cookieName))

	protected.HandleFunc("/session", h.Auth.Session).Methods(http.MethodGet)
	protected.HandleFunc("/projects", h.Project.List).Methods(http.MethodGet)
	protected.HandleFunc("/projects", h.Project.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{projectId}/endpoints", h.Project.GetEndpoints).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}/endpoints", h.Project.CreateEndpoint).Methods(http.MethodPost)

	if h.Web != nil {
		h.Web.Register(router)
	}
}
