package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
	Helper            *helper.HTTPHelper
}

func NewStatisticsHandler(statisticsService services.StatisticsService, h *helper.HTTPHelper) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, Helper: h}
}

func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statisticsService.Overall()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}

func (h *StatisticsHandler) GetMostViewed(c *gin.Context) {
	var params models.RankingParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	posts, err := h.statisticsService.MostViewed(params.Limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", posts)
}

func (h *StatisticsHandler) GetMostCommented(c *gin.Context) {
	var params models.RankingParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	summaries, err := h.statisticsService.MostCommented(params.Limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", summaries)
}
