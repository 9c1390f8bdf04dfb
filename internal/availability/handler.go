package availability

import (
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	httperr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/gin-gonic/gin"
)

// IntervalQuery is GET /v1/availabilities/intervals.
type IntervalQuery struct {
	v1.DateRangeQuery
	VenueID string `form:"venue_id"`
	SpaceID string `form:"space_id"`
	Merged  bool   `form:"merged"`
}

type ListQuery struct {
	VenueID string `form:"venue_id"`
	SpaceID string `form:"space_id"`
}

// IntervalsResponse lists occurrences, or merged coverage when Merged is set.
type IntervalsResponse struct {
	Entity    v1.EntityRef        `json:"entity"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Merged    bool                `json:"merged"`
	Intervals []interval.Interval `json:"intervals"`
}

type idURI struct {
	ID string `uri:"id" binding:"required"`
}

// RegisterRoutes registers all availability API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/availabilities", s.HandleCreate)
	r.GET("/v1/availabilities", s.HandleList)
	r.GET("/v1/availabilities/intervals", s.HandleIntervals)
	r.GET("/v1/availabilities/:id", s.HandleGet)
	r.PATCH("/v1/availabilities/:id", s.HandleUpdate)
	r.DELETE("/v1/availabilities/:id", s.HandleDelete)
}

// HandleCreate handles POST /v1/availabilities
func (s *Service) HandleCreate(c *gin.Context) {
	var req v1.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	created, err := s.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create availability")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// HandleList handles GET /v1/availabilities
// Query parameters: venue_id, space_id (both optional, at most one)
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

	records, err := s.List(c.Request.Context(), query.VenueID, query.SpaceID)
	if err != nil {
		respondError(c, err, "Failed to list availabilities")
		return
	}
	if records == nil {
		records = []*v1.Availability{}
	}

	c.JSON(http.StatusOK, records)
}

// HandleIntervals handles GET /v1/availabilities/intervals
// Query parameters: start_date, end_date, venue_id | space_id, merged
func (s *Service) HandleIntervals(c *gin.Context) {
	var query IntervalQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	ref, err := v1.RefOf(query.VenueID, query.SpaceID)
	if err != nil {
		respondError(c, err, "Invalid entity reference")
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

	occ, err := s.Intervals(c.Request.Context(), ref, timeutil.DateRange{From: from, To: to})
	if err != nil {
		respondError(c, err, "Failed to query availability intervals")
		return
	}
	if query.Merged {
		occ = interval.Merge(occ)
	}
	if occ == nil {
		occ = []interval.Interval{}
	}

	c.JSON(http.StatusOK, IntervalsResponse{
		Entity:    ref,
		StartDate: from.String(),
		EndDate:   to.String(),
		Merged:    query.Merged,
		Intervals: occ,
	})
}

// HandleGet handles GET /v1/availabilities/:id
func (s *Service) HandleGet(c *gin.Context) {
	var uri idURI
	if !bindURI(c, &uri) {
		return
	}

	rec, err := s.Get(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err, "Failed to load availability")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// HandleUpdate handles PATCH /v1/availabilities/:id
func (s *Service) HandleUpdate(c *gin.Context) {
	var uri idURI
	if !bindURI(c, &uri) {
		return
	}

	var req v1.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	rec, err := s.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		respondError(c, err, "Failed to update availability")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// HandleDelete handles DELETE /v1/availabilities/:id
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
			respondError(c, err, "Failed to delete availability")
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
		slog.Error("[Availability] Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}
