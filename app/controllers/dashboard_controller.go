package controllers

import (
	"net/http"

	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/response"
	"github.com/skbags/atelier/pkg/ws"
)

// DashboardController serves the admin dashboard summary and live order feed.
type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// Stats returns store counters for the admin dashboard.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.dashboard.Stats()
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Success(w, stats)
}

// OrderFeed upgrades to a websocket streaming order.placed events so the
// dashboard can show new orders without polling.
func (c *DashboardController) OrderFeed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, ws.OrderFeed)
}
