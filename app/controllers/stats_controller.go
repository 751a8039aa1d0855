package controllers

import (
	"net/http"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// StatsController serves the dashboard summary.
type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Get returns collection counts and total income.
// GET /api/stats
func (c *StatsController) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Get(r.Context())
	if err != nil {
		response.Internal(w, "Failed to fetch stats", err)
		return
	}
	response.Success(w, stats)
}
