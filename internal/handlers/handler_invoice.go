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

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// RegisterInvoiceRoutes registers routes related to invoices.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.POST("/:id/lines", h.addInvoiceLine)
		invoices.POST("/:id/post", h.postInvoice)
		invoices.POST("/:id/cancel", h.cancelInvoice)
		invoices.POST("/:id/pay", h.markInvoiceAsPaid)
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Sales take a customer and are numbered INV-n, purchases take a supplier and are numbered BILL-n.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice header"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req, "CreateInvoice") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create invoice")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices by status or type
// @Tags invoices
// @Produce  json
// @Param   status query string false "Invoice status" Enums(DRAFT, POSTED, PAID, CANCELLED)
// @Param   type query string false "Invoice type" Enums(SALE, PURCHASE)
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Exactly one of status or type is required"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if !bindQuery(c, &params, "ListInvoices") {
		return
	}
	if (params.Status == "") == (params.Type == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of status or type is required"})
		return
	}

	var (
		invoices []domain.Invoice
		err      error
	)
	if params.Status != "" {
		invoices, err = h.invoiceService.ListInvoicesByStatus(c.Request.Context(), domain.InvoiceStatus(params.Status))
	} else {
		invoices, err = h.invoiceService.ListInvoicesByType(c.Request.Context(), domain.InvoiceType(params.Type))
	}
	if err != nil {
		respondWithError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: dto.ToInvoiceResponses(invoices)})
}

// addInvoiceLine godoc
// @Summary Add a line to a draft invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   line body dto.AddInvoiceLineRequest true "Line"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid line"
// @Failure 409 {object} map[string]string "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id}/lines [post]
func (h *invoiceHandler) addInvoiceLine(c *gin.Context) {
	var req dto.AddInvoiceLineRequest
	if !bindJSON(c, &req, "AddInvoiceLine") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.AddInvoiceLine(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to add invoice line")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// postInvoice godoc
// @Summary Post an invoice to the ledger
// @Description Creates and posts the balancing journal entry for the invoice.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invoice has no lines or a zero total"
// @Failure 409 {object} map[string]string "Invoice is not a draft"
// @Failure 422 {object} map[string]string "A default ledger account is missing"
// @Security BearerAuth
// @Router /invoices/{id}/post [post]
func (h *invoiceHandler) postInvoice(c *gin.Context) {
	h.transition(c, h.invoiceService.PostInvoice, "Failed to post invoice", "Invoice posted")
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Cancelling a posted invoice reverses its journal entry. Paid invoices cannot be cancelled.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} map[string]string "Invoice is paid or already cancelled"
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	h.transition(c, h.invoiceService.CancelInvoice, "Failed to cancel invoice", "Invoice cancelled")
}

// markInvoiceAsPaid godoc
// @Summary Mark a posted invoice as paid
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 409 {object} map[string]string "Invoice is not posted"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *invoiceHandler) markInvoiceAsPaid(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkInvoiceAsPaid, "Failed to mark invoice as paid", "Invoice paid")
}

func (h *invoiceHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error),
	failure, success string,
) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := apply(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, failure)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info(success,
		slog.String("invoice_id", invoice.InvoiceID), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Tags invoices
// @Param   id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
