package shoppinglist

import (
	"net/http"

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
	rg.GET("/cart/download", h.Download)
}

func (h *Handler) Download(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	doc, err := h.svc.Document(c.Request.Context(), userID)
	if err != nil {
		if err == ErrEmptyCart {
			response.Error(c, http.StatusBadRequest, "EMPTY_CART", "Shopping cart is empty")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
