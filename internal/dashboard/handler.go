package dashboard

import (
	"net/http"

	httperr "github.com/aevon-lab/rfm-insight/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all dashboard API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dashboard", s.HandleDashboard)
	r.GET("/v1/records", s.HandleRecords)
	r.GET("/v1/metrics", s.HandleMetrics)
	r.GET("/v1/segments", s.HandleSegments)
	r.GET("/v1/bounds", s.HandleBounds)
	r.POST("/v1/reload", s.HandleReload)
}

// bindFilterParams parses the shared filter query parameters:
// segments, years (repeated), and the three min/max pairs.
func bindFilterParams(c *gin.Context) (FilterParams, bool) {
	var query struct {
		Segments     []string `form:"segments"`
		Years        []string `form:"years"`
		RecencyMin   *float64 `form:"recency_min"`
		RecencyMax   *float64 `form:"recency_max"`
		FrequencyMin *float64 `form:"frequency_min"`
		FrequencyMax *float64 `form:"frequency_max"`
		MonetaryMin  *float64 `form:"monetary_min"`
		MonetaryMax  *float64 `form:"monetary_max"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid filter parameters",
			Details:   err.Error(),
		})
		return FilterParams{}, false
	}

	// Presence is checked on the raw query so an explicitly empty selection
	// is distinguishable from an absent parameter.
	values := c.Request.URL.Query()
	return FilterParams{
		Segments:     query.Segments,
		SegmentsSet:  values.Has("segments"),
		Years:        query.Years,
		YearsSet:     values.Has("years"),
		RecencyMin:   query.RecencyMin,
		RecencyMax:   query.RecencyMax,
		FrequencyMin: query.FrequencyMin,
		FrequencyMax: query.FrequencyMax,
		MonetaryMin:  query.MonetaryMin,
		MonetaryMax:  query.MonetaryMax,
	}, true
}

// HandleDashboard handles GET /v1/dashboard
func (s *Service) HandleDashboard(c *gin.Context) {
	params, ok := bindFilterParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Dashboard(params))
}

// HandleRecords handles GET /v1/records
func (s *Service) HandleRecords(c *gin.Context) {
	params, ok := bindFilterParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Records(params))
}

// HandleMetrics handles GET /v1/metrics
func (s *Service) HandleMetrics(c *gin.Context) {
	params, ok := bindFilterParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Metrics(params))
}

// HandleSegments handles GET /v1/segments
func (s *Service) HandleSegments(c *gin.Context) {
	params, ok := bindFilterParams(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Segments(params))
}

// HandleBounds handles GET /v1/bounds
func (s *Service) HandleBounds(c *gin.Context) {
	c.JSON(http.StatusOK, s.Bounds())
}

// HandleReload handles POST /v1/reload
func (s *Service) HandleReload(c *gin.Context) {
	c.JSON(http.StatusOK, s.Reload(c.Request.Context()))
}
