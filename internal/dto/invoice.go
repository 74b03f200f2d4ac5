package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest creates a draft invoice. Sales take a customer, purchases a supplier.
type CreateInvoiceRequest struct {
	InvoiceType domain.InvoiceType `json:"invoiceType" binding:"required,oneof=SALE PURCHASE"`
	Date        time.Time          `json:"date" binding:"required"`
	DueDate     *time.Time         `json:"dueDate"`
	CustomerID  *string            `json:"customerID"`
	SupplierID  *string            `json:"supplierID"`
}

// AddInvoiceLineRequest adds a priced line to a draft invoice.
type AddInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"decimalgte0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"decimalgte0"`
	TaxRate     decimal.Decimal `json:"taxRate" binding:"decimalgte0"` // percent
	AccountID   *string         `json:"accountID"`
}

// ListInvoicesParams filters invoices by status or by type. Exactly one is required.
type ListInvoicesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=DRAFT POSTED PAID CANCELLED"`
	Type   string `form:"type" binding:"omitempty,oneof=SALE PURCHASE"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	AccountID   *string         `json:"accountID,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	InvoiceType    domain.InvoiceType    `json:"invoiceType"`
	Status         domain.InvoiceStatus  `json:"status"`
	Date           time.Time             `json:"date"`
	DueDate        *time.Time            `json:"dueDate,omitempty"`
	CustomerID     *string               `json:"customerID,omitempty"`
	SupplierID     *string               `json:"supplierID,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Tax            decimal.Decimal       `json:"tax"`
	Total          decimal.Decimal       `json:"total"`
	JournalEntryID *string               `json:"journalEntryID,omitempty"`
	Version        int64                 `json:"version"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			LineID:      l.LineID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Subtotal:    l.Subtotal,
			Tax:         l.Tax,
			Total:       l.Total,
			AccountID:   l.AccountID,
		}
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceType:    inv.InvoiceType,
		Status:         inv.Status,
		Date:           inv.Date,
		DueDate:        inv.DueDate,
		CustomerID:     inv.CustomerID,
		SupplierID:     inv.SupplierID,
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		Tax:            inv.Tax,
		Total:          inv.Total,
		JournalEntryID: inv.JournalEntryID,
		Version:        inv.Version,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}
