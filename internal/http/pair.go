package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PairController struct {
	converter ConverterService
}

func NewPairController(conv ConverterService) *PairController {
	return &PairController{converter: conv}
}

// GetPair handles GET /api/pair
func (pc *PairController) GetPair(c *gin.Context) {
	c.JSON(http.StatusOK, pc.converter.DefaultPair(c.Request.Context()))
}

// SetPair handles PUT /api/pair
// Used when the user picks currencies, a favorite or a history entry.
func (pc *PairController) SetPair(c *gin.Context) {
	pair, ok := bindPair(c, false)
	if !ok {
		return
	}

	if err := pc.converter.SetPair(c.Request.Context(), pair); err != nil {
		respondStoreError(c, err, "set pair")
		return
	}
	c.JSON(http.StatusOK, pair)
}

// SwapPair handles POST /api/pair/swap
func (pc *PairController) SwapPair(c *gin.Context) {
	pair, err := pc.converter.Swap(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "swap pair")
		return
	}
	c.JSON(http.StatusOK, pair)
}
