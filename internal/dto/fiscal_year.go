package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateFiscalYearRequest defines a new fiscal year.
type CreateFiscalYearRequest struct {
	Year      int       `json:"year" binding:"required,gte=1900,lte=9999"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// DateWithinParams is the query for the inclusive bounds check.
type DateWithinParams struct {
	Date time.Time `form:"date" binding:"required" time_format:"2006-01-02"`
}

// DateWithinResponse reports the result of the bounds check.
type DateWithinResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Date         time.Time `json:"date"`
	Within       bool      `json:"within"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Year         int       `json:"year"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	IsCurrent    bool      `json:"isCurrent"`
	Version      int64     `json:"version"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to FiscalYearResponse DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Year:         fy.Year,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		IsClosed:     fy.IsClosed,
		IsCurrent:    fy.IsCurrent,
		Version:      fy.Version,
	}
}

// ToFiscalYearResponses converts a slice of fiscal years.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(years))
	for i, fy := range years {
		res[i] = ToFiscalYearResponse(&fy)
	}
	return res
}
