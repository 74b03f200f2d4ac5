package domain

import "time"

// FiscalYear is a bounded date range that gates which dates accept postings.
// The "at most one current year" rule is kept by the fiscal year service.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Year         int       `json:"year"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	IsCurrent    bool      `json:"isCurrent"`
	Version      int64     `json:"version"`
	AuditFields
}

// CalendarYearBounds returns January 1st and December 31st of year.
func CalendarYearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether date falls within the year, bounds inclusive.
// Only the calendar date of each value is compared.
func (f *FiscalYear) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(f.StartDate)) && !d.After(DateOnly(f.EndDate))
}

// Close marks the year closed and clears current.
func (f *FiscalYear) Close() error {
	if f.IsClosed {
		return ErrFiscalYearClosed
	}
	f.IsClosed = true
	f.IsCurrent = false
	return nil
}

// Reopen clears closed. Current is not restored.
func (f *FiscalYear) Reopen() error {
	if !f.IsClosed {
		return ErrFiscalYearNotClosed
	}
	f.IsClosed = false
	return nil
}
