package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.PUT("", h.saveCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/convert", h.convert)
		currencies.GET("/:code", h.getCurrencyByCode)
		currencies.POST("/:code/base", h.setAsBaseCurrency)
	}
}

// saveCurrency godoc
// @Summary Create or update a currency
// @Description The first currency saved becomes the base currency with rate 1.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.SaveCurrencyRequest true "Currency details"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid code or rate"
// @Failure 500 {object} map[string]string "Failed to save currency"
// @Security BearerAuth
// @Router /currencies [put]
func (h *currencyHandler) saveCurrency(c *gin.Context) {
	var req dto.SaveCurrencyRequest
	if !bindJSON(c, &req, "SaveCurrency") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.SaveCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to save currency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency saved",
		slog.String("currency_code", currency.CurrencyCode), slog.Bool("is_base", currency.IsBaseCurrency))
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to retrieve base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrencyByCode godoc
// @Summary Get currency by code
// @Tags currencies
// @Produce  json
// @Param   code path string true "3-letter Currency Code (e.g., USD)"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// setAsBaseCurrency godoc
// @Summary Make a currency the base currency
// @Description Other rates are not rescaled.
// @Tags currencies
// @Produce  json
// @Param   code path string true "3-letter Currency Code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Currency is inactive"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{code}/base [post]
func (h *currencyHandler) setAsBaseCurrency(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	currency, err := h.currencyService.SetAsBaseCurrency(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to set base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Decimal amount"
// @Param   from query string true "Source currency code"
// @Param   to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid amount or inactive currency"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if !bindQuery(c, &params, "Convert") {
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + params.Amount})
		return
	}

	from, to := strings.ToUpper(params.From), strings.ToUpper(params.To)
	result, err := h.currencyService.Convert(c.Request.Context(), amount, from, to)
	if err != nil {
		respondWithError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{Amount: amount, From: from, To: to, Result: result})
}
