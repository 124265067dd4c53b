package handlers

import (
	"apiforge/internal/models"
	"apiforge/internal/reqctx"
	"apiforge/internal/services"
	helpers "apiforge/internal/utils/helpers"
	"net/http"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	svc *services.ProjectService
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List godoc
// @Summary      Проекты текущего пользователя
// @Description  Отсортированы по имени.
// @Tags         projects
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200  {array}   models.Project
// @Failure      401  {object}  map[string]string
// @Router       /api/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.UserFrom(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projects, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, projects)
}

// Create godoc
// @Summary      Создать проект
// @Tags         projects
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateProjectRequest  true  "Имя проекта"
// @Success      200   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.UserFrom(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	project, err := h.svc.Create(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, project)
}

// GetEndpoints godoc
// @Summary      Проект с эндпоинтами
// @Description  Эндпоинты отсортированы по пути.
// @Tags         endpoints
// @Security     ApiKeyAuth
// @Produce      json
// @Param        projectId  path      string  true  "ID проекта"
// @Success      200        {object}  models.ProjectDetail
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/projects/{projectId}/endpoints [get]
func (h *ProjectHandler) GetEndpoints(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.UserFrom(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	project, err := h.svc.Get(r.Context(), user.ID, mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, project)
}

// CreateEndpoint godoc
// @Summary      Создать mock-эндпоинт в проекте
// @Tags         endpoints
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                        true  "ID проекта"
// @Param        body       body      models.CreateEndpointRequest  true  "Метод, путь и JSON-тело"
// @Success      200        {object}  models.Endpoint
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /api/projects/{projectId}/endpoints [post]
func (h *ProjectHandler) CreateEndpoint(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.UserFrom(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Битое тело считаем пустым: сервис сначала проверит владельца (403), потом поля (400).
	var req models.CreateEndpointRequest
	if err := decodeJSON(w, r, &req); err != nil {
		req = models.CreateEndpointRequest{}
	}

	endpoint, err := h.svc.CreateEndpoint(r.Context(), user.ID, mux.Vars(r)["projectId"], req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, endpoint)
}
