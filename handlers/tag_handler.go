package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService  services.TagService
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, postService services.PostService, h *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, postService: postService, Helper: h}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

// GetTags lists tags, or looks one up when ?slug= is given.
func (h *TagHandler) GetTags(c *gin.Context) {
	var params models.LookupParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	if params.Slug != "" {
		tag, err := h.tagService.GetTagBySlug(params.Slug)
		if err != nil {
			h.Helper.SendServiceError(c, err)
			return
		}
		h.Helper.SendSuccess(c, "Success", tag)
		return
	}

	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdateTagRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	tag, err := h.tagService.UpdateTag(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag updated successfully", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	unlinked, err := h.tagService.DeleteTag(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag deleted successfully", gin.H{"posts_unlinked": unlinked})
}

func (h *TagHandler) GetTagPosts(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	posts, err := h.postService.GetPostsByTag(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", posts)
}
