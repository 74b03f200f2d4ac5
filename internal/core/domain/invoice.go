package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales from purchases.
type InvoiceType string

const (
	InvoiceSale     InvoiceType = "SALE"
	InvoicePurchase InvoiceType = "PURCHASE"
)

// IsValid reports whether t is SALE or PURCHASE.
func (t InvoiceType) IsValid() bool {
	return t == InvoiceSale || t == InvoicePurchase
}

// NumberPrefix is the prefix used when numbering invoices of this type.
func (t InvoiceType) NumberPrefix() string {
	if t == InvoicePurchase {
		return "BILL"
	}
	return "INV"
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoicePosted    InvoiceStatus = "POSTED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

var hundred = decimal.NewFromInt(100)

// InvoiceLine is one priced row of an invoice. Subtotal, Tax and Total are derived.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"` // percent, e.g. 21
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	AccountID   *string         `json:"accountID,omitempty"` // overrides the revenue/expense default
}

// Validate rejects negative quantities, prices and rates, and values finer than AmountScale.
func (l InvoiceLine) Validate() error {
	if l.Description == "" {
		return ErrInvalidInvoiceLine
	}
	if l.Quantity.IsNegative() || l.UnitPrice.IsNegative() || l.TaxRate.IsNegative() {
		return ErrNegativeAmount
	}
	for _, v := range []decimal.Decimal{l.Quantity, l.UnitPrice, l.TaxRate} {
		if !FitsScale(v, AmountScale) {
			return ErrAmountTooPrecise
		}
	}
	return nil
}

// Recompute derives subtotal, tax and total from quantity, price and rate.
// Amounts are rounded half-up to MoneyScale.
func (l *InvoiceLine) Recompute() {
	l.Subtotal = l.Quantity.Mul(l.UnitPrice).Round(MoneyScale)
	l.Tax = l.Subtotal.Mul(l.TaxRate).Div(hundred).Round(MoneyScale)
	l.Total = l.Subtotal.Add(l.Tax)
}

// Invoice is a commercial document that is posted to the ledger as one journal entry.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	InvoiceType    InvoiceType     `json:"invoiceType"`
	Status         InvoiceStatus   `json:"status"`
	Date           time.Time       `json:"date"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	CustomerID     *string         `json:"customerID,omitempty"`
	SupplierID     *string         `json:"supplierID,omitempty"`
	Lines          []InvoiceLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	Version        int64           `json:"version"`
	AuditFields
}

// ValidateParty checks that exactly the party matching the invoice type is set.
func (inv *Invoice) ValidateParty() error {
	hasCustomer := inv.CustomerID != nil && *inv.CustomerID != ""
	hasSupplier := inv.SupplierID != nil && *inv.SupplierID != ""
	switch inv.InvoiceType {
	case InvoiceSale:
		if hasCustomer && !hasSupplier {
			return nil
		}
	case InvoicePurchase:
		if hasSupplier && !hasCustomer {
			return nil
		}
	default:
		return ErrInvalidInvoiceType
	}
	return ErrInvoiceParty
}

// AddLine recomputes the line, appends it and refreshes the invoice totals.
func (inv *Invoice) AddLine(line InvoiceLine) error {
	if inv.Status != InvoiceDraft {
		return ErrInvoiceNotDraft
	}
	if err := line.Validate(); err != nil {
		return err
	}
	line.Recompute()
	inv.Lines = append(inv.Lines, line)
	inv.Recompute()
	return nil
}

// Recompute sums the derived amounts of every line into the header.
func (inv *Invoice) Recompute() {
	subtotal, tax := decimal.Zero, decimal.Zero
	for i := range inv.Lines {
		inv.Lines[i].Recompute()
		subtotal = subtotal.Add(inv.Lines[i].Subtotal)
		tax = tax.Add(inv.Lines[i].Tax)
	}
	inv.Subtotal = subtotal
	inv.Tax = tax
	inv.Total = subtotal.Add(tax)
}

// CanPost reports why a draft cannot be posted, if it cannot.
func (inv *Invoice) CanPost() error {
	if inv.Status != InvoiceDraft {
		return ErrInvoiceNotDraft
	}
	if len(inv.Lines) == 0 {
		return ErrInvoiceNoLines
	}
	if !inv.Total.IsPositive() {
		return ErrInvoiceZeroTotal
	}
	return nil
}

// MarkPosted records the journal entry created for the invoice.
func (inv *Invoice) MarkPosted(entryID string) error {
	if err := inv.CanPost(); err != nil {
		return err
	}
	inv.Status = InvoicePosted
	inv.JournalEntryID = &entryID
	return nil
}

// MarkPaid moves a posted invoice to paid.
func (inv *Invoice) MarkPaid() error {
	if inv.Status != InvoicePosted {
		return ErrInvoiceNotPosted
	}
	inv.Status = InvoicePaid
	return nil
}

// Cancel moves the invoice to cancelled. Reversing a posted entry is the caller's job.
func (inv *Invoice) Cancel() error {
	switch inv.Status {
	case InvoiceCancelled:
		return ErrInvoiceCancelled
	case InvoicePaid:
		return ErrInvoicePaid
	}
	inv.Status = InvoiceCancelled
	return nil
}

// Clone returns a deep copy of the invoice.
func (inv Invoice) Clone() Invoice {
	c := inv
	c.Lines = make([]InvoiceLine, len(inv.Lines))
	for i, l := range inv.Lines {
		l.AccountID = cloneString(l.AccountID)
		c.Lines[i] = l
	}
	if inv.DueDate != nil {
		d := *inv.DueDate
		c.DueDate = &d
	}
	c.CustomerID = cloneString(inv.CustomerID)
	c.SupplierID = cloneString(inv.SupplierID)
	c.JournalEntryID = cloneString(inv.JournalEntryID)
	return c
}
