package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/cache"
	"github.com/hexalab/demostore_api/pkg/ninjas"
)

// BitcoinHandler proxies the third-party bitcoin price endpoint. The
// upstream JSON is relayed to the browser client verbatim.
type BitcoinHandler struct {
	ninjas     *ninjas.Client
	priceCache *cache.PriceCache // nil when Redis is not configured
}

// NewBitcoinHandler constructs a BitcoinHandler. priceCache may be nil.
func NewBitcoinHandler(client *ninjas.Client, priceCache *cache.PriceCache) *BitcoinHandler {
	return &BitcoinHandler{ninjas: client, priceCache: priceCache}
}

// GetBitcoinInfo handles GET /bitcoin-info
func (h *BitcoinHandler) GetBitcoinInfo(c *gin.Context) {
	ctx := c.Request.Context()

	if h.priceCache != nil {
		if body, ok := h.priceCache.Get(ctx); ok {
			c.Data(200, "application/json", body)
			return
		}
	}

	body, err := h.ninjas.BitcoinInfo(ctx)
	if err != nil {
		if errors.Is(err, ninjas.ErrUnexpectedStatus) {
			c.JSON(502, gin.H{"error": "Failed to fetch bitcoin data"})
			return
		}
		log.Error().Err(err).Msg("bitcoin upstream request failed")
		c.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
		return
	}

	if h.priceCache != nil {
		h.priceCache.Set(ctx, body)
	}
	c.Data(200, "application/json", body)
}
