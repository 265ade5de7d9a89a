package handlers

import (
	"strconv"

	"blog-api/helper"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter. On failure it writes a
// bad request response and returns false.
func parseID(c *gin.Context, h *helper.HTTPHelper, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.SendBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates a JSON body, answering 400 on failure.
func bindJSON(c *gin.Context, h *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.SendBadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	if err := h.ValidateStruct(req); err != nil {
		h.SendValidationError(c, err)
		return false
	}
	return true
}

// bindQuery is bindJSON for query strings.
func bindQuery(c *gin.Context, h *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.SendBadRequest(c, "Invalid query: "+err.Error())
		return false
	}
	if err := h.ValidateStruct(req); err != nil {
		h.SendValidationError(c, err)
		return false
	}
	return true
}
