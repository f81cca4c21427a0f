package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/service"
	"catalog-backend/internal/shared/response"
	"catalog-backend/internal/shared/validation"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the author pages on a /catalog group. Both the
// singular /author/... paths and the plural /authors/... aliases resolve to
// the same handlers.
func (h *AuthorHandler) RegisterRoutes(catalog *gin.RouterGroup) {
	catalog.GET("/authors", h.List)

	for _, prefix := range []string{"/author", "/authors"} {
		g := catalog.Group(prefix)
		{
			g.GET("/create", h.CreateForm)
			g.POST("/create", h.Create)
			g.GET("/:id", h.Detail)
			g.GET("/:id/delete", h.DeleteConfirmation)
			g.POST("/:id/delete", h.Delete)
			g.GET("/:id/update", h.UpdateForm)
			g.POST("/:id/update", h.Update)
		}
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /catalog/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

// ════════════════════════════════════════════════════════════════
// DETAIL: GET /catalog/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

// ════════════════════════════════════════════════════════════════
// CREATE: GET/POST /catalog/author/create
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) CreateForm(c *gin.Context) {
	response.Present(c, h.service.CreateForm())
}

func (h *AuthorHandler) Create(c *gin.Context) {
	out, err := h.service.Create(c.Request.Context(), postForm(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

// ════════════════════════════════════════════════════════════════
// DELETE: GET/POST /catalog/author/:id/delete
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) DeleteConfirmation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.service.DeleteConfirmation(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.service.Delete(c.Request.Context(), id, c.PostForm(service.FieldAuthorID))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: GET/POST /catalog/author/:id/update
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.service.UpdateForm(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.service.Update(c.Request.Context(), id, postForm(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Present(c, out)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

// parseID writes a 400 and reports false when the path id is not a uuid.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, model.ErrInvalidAuthorID)
		return uuid.Nil, false
	}
	return id, true
}

func postForm(c *gin.Context) validation.FieldSource {
	return validation.FormFunc(c.PostForm)
}

func handleError(c *gin.Context, err error) {
	response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
}
