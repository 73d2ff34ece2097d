package cart

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
	rg.GET("/cart", h.List)
	rg.POST("/recipes/:id/cart", h.Add)
	rg.DELETE("/recipes/:id/cart", h.Remove)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list cart")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	rec, err := h.svc.Add(c.Request.Context(), userID, recipeID)
	if err != nil {
		switch err {
		case ErrRecipeNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
		case ErrAlreadyExists:
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", "Recipe is already in the shopping cart")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to add to cart")
		}
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, recipeID); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe is not in the shopping cart")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to remove from cart")
		return
	}
	c.Status(http.StatusNoContent)
}
