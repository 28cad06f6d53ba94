package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signature-explorer/middleware"
	"signature-explorer/openchain"
	"signature-explorer/signature"
)

const (
	upstreamFailedMessage = "Failed to fetch from upstream API"
	internalErrorMessage  = "Internal server error"
)

func (h *Handler) SearchAPI(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	raw, err := h.client.SearchRaw(c.Request.Context(), query)
	h.forward(c, "search", raw, err)
}

// LookupAPI accepts either selector, which is validated and asked for as both a
// function and an event, or explicit function/event hashes passed through as is.
func (h *Handler) LookupAPI(c *gin.Context) {
	var params openchain.LookupParams

	if v, ok := c.GetQuery("filter"); ok {
		filter, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be true or false"})
			return
		}
		params.Filter = &filter
	}

	if selector := c.Query("selector"); selector != "" {
		q := signature.Classify(selector)
		switch {
		case q.IsInvalid():
			c.JSON(http.StatusBadRequest, gin.H{"error": q.Reason})
			return
		case q.IsText():
			c.JSON(http.StatusBadRequest, gin.H{"error": "selector must be a 4 or 32 byte hex hash"})
			return
		}
		params.Function = q.Hex
		params.Event = q.Hex
	} else {
		params.Function = c.Query("function")
		params.Event = c.Query("event")
	}

	if params.Function == "" && params.Event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either selector, function or event parameter is required"})
		return
	}

	raw, err := h.client.LookupRaw(c.Request.Context(), params)
	h.forward(c, "lookup", raw, err)
}

func (h *Handler) StatsAPI(c *gin.Context) {
	raw, err := h.statsRaw(c.Request.Context())
	h.forward(c, "stats", raw, err)
}

func (h *Handler) HistoryAPI(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("history API error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": records})
}

// statsRaw serves the stats body from cache when possible and caches fresh 2xx bodies.
func (h *Handler) statsRaw(ctx context.Context) (*openchain.RawResponse, error) {
	if body, ok := h.stats.Get(); ok {
		return &openchain.RawResponse{StatusCode: http.StatusOK, Body: body}, nil
	}

	raw, err := h.client.StatsRaw(ctx)
	if err != nil {
		return nil, err
	}
	if raw.OK() {
		if err := h.stats.Set(raw.Body); err != nil {
			h.logger.Warn("failed to cache stats", zap.Error(err))
		}
	}
	return raw, nil
}

// forward relays an upstream body unchanged. Upstream failures keep the upstream
// status; transport failures become a 500.
func (h *Handler) forward(c *gin.Context, endpoint string, raw *openchain.RawResponse, err error) {
	if err != nil {
		h.logger.Error(endpoint+" API error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if !raw.OK() {
		h.logger.Warn(endpoint+" upstream error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int("upstream_status", raw.StatusCode))
		c.JSON(raw.StatusCode, gin.H{"error": upstreamFailedMessage})
		return
	}
	c.Data(raw.StatusCode, jsonContentType, raw.Body)
}
