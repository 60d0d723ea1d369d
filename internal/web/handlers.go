package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurantmap/internal/finder"
	"restaurantmap/internal/render"
	"restaurantmap/internal/service"
)

type searchForm struct {
	Location string `form:"location"`
	Cuisine  string `form:"cuisine"`
}

// LocationRequest is the body of POST /api/location.
type LocationRequest struct {
	Location string `json:"location" binding:"required"`
	Cuisine  string `json:"cuisine"`
}

// ExportRequest is the body of POST /api/export.
type ExportRequest struct {
	Location string `json:"location" binding:"required"`
	Cuisine  string `json:"cuisine"`
	Force    bool   `json:"force"`
}

type LocationResponse struct {
	Outcome finder.Outcome `json:"outcome"`
	View    finder.View    `json:"view"`
}

// index handles GET /?cuisine=...
func (s *Server) index(c *gin.Context) {
	sess := s.session(c)
	sess.Lock()
	defer sess.Unlock()

	notices := s.finder.Ensure(c.Request.Context(), sess)
	view := s.finder.View(sess, selectionOrAll(c.Query("cuisine")))
	s.writePage(c, view, notices)
}

// search handles the location form. An empty location is not a submission.
func (s *Server) search(c *gin.Context) {
	var form searchForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	sess := s.session(c)
	sess.Lock()
	defer sess.Unlock()

	out := s.finder.Submit(c.Request.Context(), sess, form.Location)
	notices := append(out.Notices, s.finder.Ensure(c.Request.Context(), sess)...)
	view := s.finder.View(sess, selectionOrAll(form.Cuisine))
	s.writePage(c, view, notices)
}

// restaurants handles GET /api/restaurants?cuisine=...
func (s *Server) restaurants(c *gin.Context) {
	sess := s.session(c)
	sess.Lock()
	defer sess.Unlock()

	notices := s.finder.Ensure(c.Request.Context(), sess)
	view := s.finder.View(sess, selectionOrAll(c.Query("cuisine")))
	view.Notices = append(notices, view.Notices...)
	c.JSON(http.StatusOK, view)
}

// mapData handles GET /api/map?cuisine=... with the marker set only.
func (s *Server) mapData(c *gin.Context) {
	sess := s.session(c)
	sess.Lock()
	defer sess.Unlock()

	s.finder.Ensure(c.Request.Context(), sess)
	c.JSON(http.StatusOK, render.NewMap(s.finder.View(sess, selectionOrAll(c.Query("cuisine")))))
}

// relocate handles POST /api/location.
func (s *Server) relocate(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'location' is required"})
		return
	}

	sess := s.session(c)
	sess.Lock()
	defer sess.Unlock()

	out := s.finder.Submit(c.Request.Context(), sess, req.Location)
	view := s.finder.View(sess, selectionOrAll(req.Cuisine))
	c.JSON(http.StatusOK, LocationResponse{Outcome: out, View: view})
}

// export handles POST /api/export by queueing the request for the exporter.
func (s *Server) export(c *gin.Context) {
	if s.exports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "map export is not configured"})
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'location' is required"})
		return
	}

	msg := service.SearchRequest{Location: req.Location, Cuisine: req.Cuisine, Force: req.Force}
	if err := s.exports.PublishJSON(c.Request.Context(), req.Location, msg); err != nil {
		s.log.Error("queue export", "location", req.Location, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not queue export"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": msg})
}
