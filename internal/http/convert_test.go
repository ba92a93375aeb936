package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/exchangerate"
	"github.com/mrlokans/smartrate/internal/rates"
)

func TestConvertController_Convert(t *testing.T) {
	t.Run("converts and records history", func(t *testing.T) {
		s := newTestStack(t)

		w := s.do("GET", "/api/convert?from=USD&to=EUR&amount=100", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, "90", resp["result"])
		assert.Equal(t, "EUR 90.00", resp["display"])
		assert.Equal(t, false, resp["isOffline"])

		entries, err := s.history.List(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 90.0, entries[0].Result)
	})

	t.Run("identity conversion skips the network", func(t *testing.T) {
		s := newTestStack(t)

		w := s.do("GET", "/api/convert?from=JPY&to=JPY&amount=1500", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, "1", resp["rate"])
		assert.Equal(t, "JPY 1500", resp["display"])
		assert.Empty(t, s.provider.keys)
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		s := newTestStack(t)

		w := s.do("GET", "/api/convert?from=USD&to=EUR&amount=lots", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, rates.MessageInvalidAmount, resp.Code)
	})

	t.Run("rejects out of range amount", func(t *testing.T) {
		s := newTestStack(t)

		w := s.do("GET", "/api/convert?from=USD&to=EUR&amount=1e999999999", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, rates.MessageInvalidAmount, resp.Code)
		assert.Empty(t, s.provider.keys)
	})

	t.Run("reports missing rate", func(t *testing.T) {
		s := newTestStack(t)

		w := s.do("GET", "/api/convert?from=USD&to=CHF&amount=1", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, rates.MessageRateUnavailable, resp["messageKey"])
	})

	t.Run("reports provider failure", func(t *testing.T) {
		s := newTestStack(t)
		s.provider.err = exchangerate.ErrNetwork

		w := s.do("GET", "/api/convert?from=USD&to=EUR&amount=1", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, rates.MessageAPINetwork, resp["messageKey"])
	})
}
