package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/service"
	"github.com/nichewire/nichewire-backend/pkg/ginutil"
)

// PostHandler handles HTTP requests for blog posts
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts godoc
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  common.APIResponse{data=domain.PostListResponse}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	data, err := h.service.ListPublished(c, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch posts", err)
		return
	}

	common.SuccessResponse(c, data, &common.Meta{
		Page:  page,
		Limit: limit,
		Total: data.Total,
	})
}

// GetPost godoc
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "Post slug"
// @Success      200  {object}  common.APIResponse{data=domain.Post}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.service.GetBySlug(c, slug)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Success      201  {object}  common.APIResponse{data=domain.Post}
// @Failure      400  {object}  common.APIResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(c, &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create post", err)
		return
	}

	common.CreatedResponse(c, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  common.APIResponse{data=domain.Post}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.Update(c, id, &req)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// DeletePost godoc
// @Summary      Delete a post
// @Tags         posts
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c, id); err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete post", err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}
