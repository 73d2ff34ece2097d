package recipe

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recipebook/internal/domain"
	"recipebook/internal/pkg/response"
	"recipebook/internal/repository"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes puts reads behind optional auth (anonymous viewers get
// unflagged listings) and writes behind required auth.
func (h *Handler) RegisterRoutes(optional, protected *gin.RouterGroup) {
	if optional != nil {
		optional.GET("/recipes", h.List)
		optional.GET("/recipes/:id", h.Get)
	}
	if protected != nil {
		protected.POST("/recipes", h.Create)
		protected.PUT("/recipes/:id", h.Replace)
		protected.DELETE("/recipes/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	viewerID := c.GetInt64("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var f repository.RecipeFilter
	if authorStr := c.Query("author"); authorStr != "" {
		authorID, err := strconv.ParseInt(authorStr, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid author id")
			return
		}
		f.AuthorID = authorID
	}
	if tags := c.Query("tags"); tags != "" {
		f.TagSlugs = strings.Split(tags, ",")
	}

	list, err := h.svc.List(c.Request.Context(), viewerID, f, page, perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list recipes")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), c.GetInt64("user_id"), recipeID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) Replace(c *gin.Context) {
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

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rec, err := h.svc.Replace(c.Request.Context(), userID, recipeID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Delete(c *gin.Context) {
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

	isAdmin := c.GetString("role") == string(domain.RoleAdmin)
	if err := h.svc.Delete(c.Request.Context(), userID, recipeID, isAdmin); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidName:
		response.Error(c, http.StatusBadRequest, "INVALID_NAME", "Recipe name is too short")
	case ErrInvalidDescription:
		response.Error(c, http.StatusBadRequest, "INVALID_DESCRIPTION", "Recipe description is too short")
	case ErrInvalidCookingTime:
		response.Error(c, http.StatusBadRequest, "INVALID_COOKING_TIME", "Cooking time must be between 1 and 240 minutes")
	case ErrEmptyIngredientList:
		response.Error(c, http.StatusBadRequest, "EMPTY_INGREDIENTS", "Add at least one ingredient")
	case ErrUnknownIngredient:
		response.Error(c, http.StatusBadRequest, "UNKNOWN_INGREDIENT", "One of the ingredients does not exist")
	case ErrInvalidAmount:
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", "Ingredient amount must be a positive integer")
	case ErrDuplicateIngredient:
		response.Error(c, http.StatusBadRequest, "DUPLICATE_INGREDIENT", "Ingredients must not repeat")
	case ErrUnknownTag:
		response.Error(c, http.StatusBadRequest, "UNKNOWN_TAG", "One of the tags does not exist")
	case ErrDuplicateRecipeName:
		response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "You already saved a recipe with this name")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author can modify this recipe")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
