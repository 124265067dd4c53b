package web

import (
	"apiforge/internal/logger"
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type pageData struct {
	Title     string
	ProjectID string
	Token     string
}

type Handler struct {
	pages map[string]*template.Template
}

var pageFiles = []string{
	"home",
	"login",
	"register",
	"dashboard",
	"project",
	"forgot_password",
	"reset_password",
}

// NewHandler парсит встроенные шаблоны и паникует на битом шаблоне.
func NewHandler() *Handler {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		pages[name] = template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &Handler{pages: pages}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.page("home", "Home")).Methods(http.MethodGet)
	r.HandleFunc("/login", h.page("login", "Login")).Methods(http.MethodGet)
	r.HandleFunc("/register", h.page("register", "Register")).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.page("dashboard", "Dashboard")).Methods(http.MethodGet)
	r.HandleFunc("/projects/{projectId}", h.page("project", "Project")).Methods(http.MethodGet)
	r.HandleFunc("/forgot-password", h.page("forgot_password", "Forgot Password")).Methods(http.MethodGet)
	r.HandleFunc("/reset-password", h.page("reset_password", "Reset Password")).Methods(http.MethodGet)
}

func (h *Handler) page(name, title string) http.HandlerFunc {
	tmpl := h.pages[name]
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			Title:     title,
			ProjectID: mux.Vars(r)["projectId"],
			Token:     r.URL.Query().Get("token"),
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
			logger.WithCtx(r.Context()).Error("Ошибка рендера страницы", zap.String("page", name), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}
