package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // UI message key
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInvalidInput sends a 400 carrying the UI message key of err.
func respondInvalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: rates.MessageKey(err)})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondStoreError logs err and answers 503 when storage is unavailable,
// 500 otherwise. The error itself is not exposed.
func respondStoreError(c *gin.Context, err error, context string) {
	log.Printf("Store error (%s): %v", context, err)
	if errors.Is(err, kv.ErrStorageUnavailable) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// currencyParam upper-cases a path parameter and validates it as a
// currency code, answering 400 on failure.
func currencyParam(c *gin.Context, name string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(c.Param(name)))
	if !entities.IsValidCurrencyCode(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid currency code " + c.Param(name),
			Code:  rates.MessageInvalidBaseCurrency,
		})
		return "", false
	}
	return code, true
}

// bindPair reads a {from, to} body and normalises the codes, answering 400
// on failure. Favorites must be distinct pairs; the default pair may
// convert a currency to itself.
func bindPair(c *gin.Context, distinct bool) (entities.FavoritePair, bool) {
	var pair entities.FavoritePair
	if err := c.ShouldBindJSON(&pair); err != nil {
		respondBadRequest(c, "invalid request body")
		return pair, false
	}
	pair.From = strings.ToUpper(strings.TrimSpace(pair.From))
	pair.To = strings.ToUpper(strings.TrimSpace(pair.To))

	if distinct {
		if err := pair.Validate(); err != nil {
			respondBadRequest(c, err.Error())
			return pair, false
		}
		return pair, true
	}
	if !entities.IsValidCurrencyCode(pair.From) || !entities.IsValidCurrencyCode(pair.To) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid currency pair " + pair.String(),
			Code:  rates.MessageInvalidBaseCurrency,
		})
		return pair, false
	}
	return pair, true
}

// SecurityHeadersMiddleware adds headers suited to a JSON-only local API.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
