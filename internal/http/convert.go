package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/rates"
)

// ConversionResponse is a conversion plus its failure, if any.
type ConversionResponse struct {
	*converter.Conversion
	Error      string `json:"error,omitempty"`
	MessageKey string `json:"messageKey,omitempty"`
}

type ConvertController struct {
	converter ConverterService
}

func NewConvertController(conv ConverterService) *ConvertController {
	return &ConvertController{converter: conv}
}

// Convert handles GET /api/convert?from=USD&to=EUR&amount=100
func (cc *ConvertController) Convert(c *gin.Context) {
	conv, err := cc.converter.Convert(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("amount"))
	if err != nil {
		respondInvalidInput(c, err)
		return
	}

	resp := ConversionResponse{Conversion: conv}
	status := http.StatusOK
	if conv.Err != nil {
		resp.Error = conv.Err.Error()
		resp.MessageKey = rates.MessageKey(conv.Err)
		switch {
		case errors.Is(conv.Err, rates.ErrRateUnavailable):
			status = http.StatusUnprocessableEntity
		case conv.Rate == nil:
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, resp)
}
