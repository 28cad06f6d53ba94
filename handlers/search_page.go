package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signature-explorer/middleware"
	"signature-explorer/models"
	"signature-explorer/openchain"
	"signature-explorer/signature"
)

const (
	fetchFailedMessage = "Failed to fetch results from the signature database."
	fetchRetryMessage  = "Failed to fetch results. Please try again."
	searchTypeSearch   = "search"
	searchTypeLookup   = "lookup"
	searchPageTitle    = "Signature Database"
)

type SearchPageData struct {
	Title      string
	APIURL     string
	Query      string
	Stats      *models.Stats
	Error      string
	Searched   bool
	SearchType string
	Results    []models.SearchResult
	Total      int
}

// Index renders the search page. The q parameter makes a search shareable: when
// present it is classified and run before rendering, and invalid input is
// reported without calling the upstream.
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	data := SearchPageData{
		Title:  searchPageTitle,
		APIURL: h.client.BaseURL(),
	}

	if stats, err := h.loadStats(ctx); err != nil {
		h.logger.Warn("stats unavailable",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
	} else {
		data.Stats = stats
	}

	q, ok := c.GetQuery("q")
	if !ok || q == "" {
		c.HTML(http.StatusOK, "index.html", data)
		return
	}
	data.Query = q

	query := signature.Classify(q)
	if query.IsInvalid() {
		data.Error = query.Reason
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	var (
		result *models.LookupResult
		err    error
	)
	if query.IsHash() {
		data.SearchType = searchTypeLookup
		result, err = h.client.LookupHash(ctx, query.Hex, nil)
	} else {
		data.SearchType = searchTypeSearch
		result, err = h.client.Search(ctx, query.Term)
	}
	if err != nil {
		h.logger.Error("search error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("type", data.SearchType),
			zap.Error(err))
		data.Error = searchErrorMessage(err)
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	results := result.Flatten()
	data.Searched = true
	data.Total = len(results)
	if len(results) > h.resultLimit {
		results = results[:h.resultLimit]
	}
	data.Results = results

	c.HTML(http.StatusOK, "index.html", data)
}

func (h *Handler) loadStats(ctx context.Context) (*models.Stats, error) {
	raw, err := h.statsRaw(ctx)
	if err != nil {
		return nil, err
	}
	return openchain.DecodeStats(raw)
}

func searchErrorMessage(err error) string {
	var statusErr *openchain.StatusError
	var apiErr *openchain.APIError
	if errors.As(err, &statusErr) || errors.As(err, &apiErr) {
		return fetchFailedMessage
	}
	return fetchRetryMessage
}
