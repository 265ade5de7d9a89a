package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService    services.PostService
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, commentService services.CommentService, h *helper.HTTPHelper) *PostHandler {
	return &PostHandler{postService: postService, commentService: commentService, Helper: h}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	post, err := h.postService.CreatePost(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Post created successfully", post)
}

// GetPosts returns post summaries with comment counts.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	summaries, err := h.postService.ListSummaries(params.PublishedOnly)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", summaries)
}

// GetPost counts a view unless ?increment_views=false.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var params models.PostQueryParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	post, err := h.postService.GetPost(id, params.IncrementViews)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdatePostRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	post, err := h.postService.UpdatePost(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	res, err := h.postService.DeletePost(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post deleted successfully", res)
}

func (h *PostHandler) PublishPost(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	post, err := h.postService.Publish(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post published", post)
}

func (h *PostHandler) UnpublishPost(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	post, err := h.postService.Unpublish(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post unpublished", post)
}

func (h *PostHandler) ResetViews(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	post, err := h.postService.ResetViews(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Post views reset", post)
}

func (h *PostHandler) AddTag(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, h.Helper, "tag_id")
	if !ok {
		return
	}

	post, err := h.postService.AddTag(id, tagID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) RemoveTag(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, h.Helper, "tag_id")
	if !ok {
		return
	}

	post, err := h.postService.RemoveTag(id, tagID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) GetPostComments(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.GetCommentsByPost(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *PostHandler) SearchPosts(c *gin.Context) {
	var params models.SearchParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	posts, err := h.postService.Search(params.Q)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", posts)
}
