package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

// RatesResponse is the JSON form of rates.RatesResult.
type RatesResponse struct {
	Base       string             `json:"base"`
	Rates      map[string]float64 `json:"rates"`
	Timestamp  int64              `json:"timestamp"`
	IsOffline  bool               `json:"isOffline"`
	Stale      bool               `json:"stale"`
	Error      string             `json:"error,omitempty"`
	MessageKey string             `json:"messageKey,omitempty"`
}

// CurrenciesResponse is the JSON form of rates.CurrenciesResult.
type CurrenciesResponse struct {
	Currencies []entities.Currency `json:"currencies"`
	Warning    string              `json:"warning,omitempty"`
	MessageKey string              `json:"messageKey,omitempty"`
}

type RatesController struct {
	rates     RatesService
	refresher RefreshEnqueuer
}

func NewRatesController(service RatesService, refresher RefreshEnqueuer) *RatesController {
	return &RatesController{rates: service, refresher: refresher}
}

// Currencies handles GET /api/currencies
// Always answers 200; a fallback list carries a warning.
func (rc *RatesController) Currencies(c *gin.Context) {
	result := rc.rates.FetchSupportedCurrencies(c.Request.Context())

	resp := CurrenciesResponse{Currencies: result.Currencies}
	if result.Warning != nil {
		resp.Warning = result.Warning.Error()
		resp.MessageKey = result.MessageKey()
	}
	c.JSON(http.StatusOK, resp)
}

// Latest handles GET /api/rates/:base
func (rc *RatesController) Latest(c *gin.Context) {
	result := rc.rates.FetchLatestRates(c.Request.Context(), c.Param("base"))

	resp := RatesResponse{
		Base:      result.Base,
		Rates:     result.Rates,
		Timestamp: result.Timestamp,
		IsOffline: result.FromCache,
		Stale:     result.Stale,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
		resp.MessageKey = rates.MessageKey(result.Err)
	}

	status := http.StatusOK
	switch {
	case errors.Is(result.Err, rates.ErrInvalidInput):
		status = http.StatusBadRequest
	case result.Err != nil && result.Rates == nil:
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// Refresh handles POST /api/rates/:base/refresh
func (rc *RatesController) Refresh(c *gin.Context) {
	base, ok := currencyParam(c, "base")
	if !ok {
		return
	}
	if rc.refresher == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "background refresh is disabled"})
		return
	}

	ids, err := rc.refresher.EnqueueRefresh(c.Request.Context(), base)
	if err != nil {
		respondStoreError(c, err, "enqueue refresh")
		return
	}
	respondAccepted(c, "refresh scheduled", gin.H{"base": base, "task_ids": ids})
}
