package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipebook/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.ListTags)
	rg.GET("/tags/:id", h.GetTag)
	rg.GET("/ingredients", h.ListIngredients)
	rg.GET("/ingredients/:id", h.GetIngredient)
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.svc.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tag ID")
		return
	}

	tag, err := h.svc.GetTag(c.Request.Context(), id)
	if err != nil {
		if err == ErrTagNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tag not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to get tag")
		return
	}
	response.Success(c, http.StatusOK, tag)
}

func (h *Handler) ListIngredients(c *gin.Context) {
	ings, err := h.svc.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list ingredients")
		return
	}
	response.Success(c, http.StatusOK, ings)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ingredient ID")
		return
	}

	ing, err := h.svc.GetIngredient(c.Request.Context(), id)
	if err != nil {
		if err == ErrIngredientNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ingredient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to get ingredient")
		return
	}
	response.Success(c, http.StatusOK, ing)
}
