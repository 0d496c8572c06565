package v1

import (
	"net/http"

	"cms/service"

	"github.com/gin-gonic/gin"
)

// StatsAPI serves the dashboard statistics endpoint.
type StatsAPI struct {
	service *service.StatsService
}

// NewStatsAPI wires the service layer into the HTTP handlers.
func NewStatsAPI(s *service.StatsService) *StatsAPI {
	return &StatsAPI{service: s}
}

// Stats 仪表盘统计
func (a *StatsAPI) Stats(c *gin.Context) {
	stats, err := a.service.Collect()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
