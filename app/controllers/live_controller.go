package controllers

import (
	"net/http"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/ws"
)

// LiveController upgrades dashboard clients onto the order event feed.
type LiveController struct {
	hub *ws.Hub
}

func NewLiveController(hub *ws.Hub) *LiveController {
	return &LiveController{hub: hub}
}

// Connect upgrades the request to a websocket.
// GET /api/live
func (c *LiveController) Connect(w http.ResponseWriter, r *http.Request) {
	c.hub.Serve(w, r)
}
