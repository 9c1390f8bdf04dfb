package event

import (
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	httperr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/gin-gonic/gin"
)

type ListQuery struct {
	SpaceID string `form:"space_id"`
}

type idURI struct {
	ID string `uri:"id" binding:"required"`
}

type spaceURI struct {
	SpaceID string `uri:"space_id" binding:"required"`
}

// RegisterRoutes registers all event API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/events", s.HandleCreate)
	r.GET("/v1/events", s.HandleList)
	r.GET("/v1/events/:id", s.HandleGet)
	r.PATCH("/v1/events/:id/status", s.HandleUpdateStatus)
	r.DELETE("/v1/events/:id", s.HandleDelete)
	r.GET("/v1/spaces/:space_id/utilization", s.HandleUtilization)
}

// HandleCreate handles POST /v1/events
// Rejected placements return 409 with the offending occurrence in details.
func (s *Service) HandleCreate(c *gin.Context) {
	var req v1.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	ev, err := s.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to place event")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// HandleList handles GET /v1/events
func (s *Service) HandleList(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	events, err := s.List(c.Request.Context(), query.SpaceID)
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}
	if events == nil {
		events = []*v1.Event{}
	}

	c.JSON(http.StatusOK, events)
}

// HandleGet handles GET /v1/events/:id
func (s *Service) HandleGet(c *gin.Context) {
	var uri idURI
	if !bindURI(c, &uri) {
		return
	}

	ev, err := s.Get(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err, "Failed to load event")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// HandleUpdateStatus handles PATCH /v1/events/:id/status
func (s *Service) HandleUpdateStatus(c *gin.Context) {
	var uri idURI
	if !bindURI(c, &uri) {
		return
	}

	var req v1.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	ev, err := s.UpdateStatus(c.Request.Context(), uri.ID, v1.EventStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update event status")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// HandleDelete handles DELETE /v1/events/:id
// With ?date=YYYY-MM-DD only that date's occurrence is removed.
func (s *Service) HandleDelete(c *gin.Context) {
	var uri idURI
	if !bindURI(c, &uri) {
		return
	}

	var query v1.OccurrenceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	if query.Date == "" {
		if err := s.Delete(c.Request.Context(), uri.ID); err != nil {
			respondError(c, err, "Failed to delete event")
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	date, err := civil.ParseDate(query.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid date",
			Details:   err.Error(),
		})
		return
	}

	res, err := s.RemoveOccurrence(c.Request.Context(), uri.ID, date)
	if err != nil {
		respondError(c, err, "Failed to remove occurrence")
		return
	}

	c.JSON(http.StatusOK, res)
}

// HandleUtilization handles GET /v1/spaces/:space_id/utilization
// Query parameters: start_date, end_date (inclusive local dates)
func (s *Service) HandleUtilization(c *gin.Context) {
	var uri spaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	var query v1.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}
	from, to, err := query.Dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid date range",
			Details:   err.Error(),
		})
		return
	}

	report, err := s.Utilization(c.Request.Context(), uri.SpaceID, timeutil.DateRange{From: from, To: to})
	if err != nil {
		respondError(c, err, "Failed to compute utilization")
		return
	}

	c.JSON(http.StatusOK, report)
}

func bindURI(c *gin.Context, uri *idURI) bool {
	if err := c.ShouldBindUri(uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error, fallback string) {
	status, body := httperr.Response(err, fallback)
	if status == http.StatusInternalServerError {
		slog.Error("[Events] Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}
