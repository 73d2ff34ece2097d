package subscription

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
	rg.GET("/subscriptions", h.List)
	rg.POST("/users/:id/subscribe", h.Subscribe)
	rg.DELETE("/users/:id/subscribe", h.Unsubscribe)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list subscriptions")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Subscribe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || authorID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	profile, err := h.svc.Subscribe(c.Request.Context(), userID, authorID)
	if err != nil {
		switch err {
		case ErrSelfSubscription:
			response.Error(c, http.StatusBadRequest, "SELF_SUBSCRIPTION", "You cannot subscribe to yourself")
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case ErrAlreadyExists:
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", "Already subscribed to this user")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to subscribe")
		}
		return
	}
	response.Success(c, http.StatusCreated, profile)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || authorID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.svc.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "You are not subscribed to this user")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to unsubscribe")
		return
	}
	c.Status(http.StatusNoContent)
}
