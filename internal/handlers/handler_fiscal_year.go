package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

// RegisterFiscalYearRoutes registers routes related to fiscal years.
func RegisterFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := &fiscalYearHandler{fiscalYearService: fiscalYearService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/current", h.getOrCreateCurrent)
		years.GET("/:id", h.getFiscalYear)
		years.GET("/:id/contains", h.isDateWithin)
		years.POST("/:id/current", h.setCurrent)
		years.POST("/:id/close", h.closeFiscalYear)
		years.POST("/:id/reopen", h.reopenFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   fiscalYear body dto.CreateFiscalYearRequest true "Year and inclusive date range"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "End date precedes start date"
// @Failure 409 {object} map[string]string "Year exists or overlaps another"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if !bindJSON(c, &req, "CreateFiscalYear") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create fiscal year")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year created", slog.Int("year", fy.Year))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce  json
// @Param   open query bool false "Only years that are not closed"
// @Success 200 {array} dto.FiscalYearResponse
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	var (
		years []domain.FiscalYear
		err   error
	)
	if c.Query("open") == "true" {
		years, err = h.fiscalYearService.ListOpenFiscalYears(c.Request.Context())
	} else {
		years, err = h.fiscalYearService.ListFiscalYears(c.Request.Context())
	}
	if err != nil {
		respondWithError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// getOrCreateCurrent godoc
// @Summary Get the current fiscal year
// @Description Returns the current year, creating and selecting the calendar year of today if none is current.
// @Tags fiscal-years
// @Produce  json
// @Success 200 {object} dto.FiscalYearResponse
// @Security BearerAuth
// @Router /fiscal-years/current [get]
func (h *fiscalYearHandler) getOrCreateCurrent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fy, err := h.fiscalYearService.GetOrCreateCurrent(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to resolve current fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// getFiscalYear godoc
// @Summary Get a fiscal year by ID
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetFiscalYearByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// isDateWithin godoc
// @Summary Check whether a date falls inside a fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DateWithinResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id}/contains [get]
func (h *fiscalYearHandler) isDateWithin(c *gin.Context) {
	var params dto.DateWithinParams
	if !bindQuery(c, &params, "IsDateWithin") {
		return
	}

	fiscalYearID := c.Param("id")
	within, err := h.fiscalYearService.IsDateWithin(c.Request.Context(), fiscalYearID, params.Date)
	if err != nil {
		respondWithError(c, err, "Failed to check fiscal year bounds")
		return
	}
	c.JSON(http.StatusOK, dto.DateWithinResponse{FiscalYearID: fiscalYearID, Date: params.Date, Within: within})
}

// setCurrent godoc
// @Summary Make a fiscal year the current one
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Fiscal year is closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/current [post]
func (h *fiscalYearHandler) setCurrent(c *gin.Context) {
	h.transition(c, h.fiscalYearService.SetCurrentFiscalYear, "Failed to set current fiscal year")
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closed years reject postings dated inside them.
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Fiscal year is already closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	h.transition(c, h.fiscalYearService.CloseFiscalYear, "Failed to close fiscal year")
}

// reopenFiscalYear godoc
// @Summary Reopen a closed fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Fiscal year is not closed"
// @Security BearerAuth
// @Router /fiscal-years/{id}/reopen [post]
func (h *fiscalYearHandler) reopenFiscalYear(c *gin.Context) {
	h.transition(c, h.fiscalYearService.ReopenFiscalYear, "Failed to reopen fiscal year")
}

func (h *fiscalYearHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error),
	failure string,
) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fy, err := apply(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, failure)
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
