package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signature-explorer/middleware"
	"signature-explorer/models"
	"signature-explorer/openchain"
	"signature-explorer/signature"
)

const (
	emptyImportMessage = "The import data field is empty, please provide some data."

	sourceWeb = "web"
	sourceAPI = "api"
)

type ImportAPIRequest struct {
	Data string `json:"data"`
}

type importOutcome struct {
	Request models.ImportRequest
	Result  *models.ImportResult
	Summary signature.Summary
}

// ImportAPI normalizes {"data": "..."} and submits it upstream.
func (h *Handler) ImportAPI(c *gin.Context) {
	var request ImportAPIRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body"})
		return
	}

	data := strings.TrimSpace(request.Data)
	if data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": emptyImportMessage})
		return
	}

	outcome, err := h.submitImport(c.Request.Context(), data, sourceAPI, middleware.GetRequestID(c))
	if err != nil {
		status, msg := importErrorResponse(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"request": outcome.Request,
		"result":  outcome.Result,
		"summary": outcome.Summary,
		"message": outcome.Summary.Message(),
	})
}

// submitImport sends one import and records it. A failed history write is logged
// and does not fail the import.
func (h *Handler) submitImport(ctx context.Context, data, source, requestID string) (*importOutcome, error) {
	req := signature.BuildImportRequest(data)

	result, err := h.client.Import(ctx, req)
	if err != nil {
		h.logger.Error("import failed",
			zap.String("request_id", requestID),
			zap.String("source", source),
			zap.Int("functions", len(req.Function)),
			zap.Int("events", len(req.Event)),
			zap.Error(err))
		return nil, err
	}

	summary := signature.Summarize(*result)
	record := summary.Record(source, requestID, req)
	if err := h.history.Record(ctx, &record); err != nil {
		h.logger.Warn("failed to record import", zap.String("request_id", requestID), zap.Error(err))
	}
	h.stats.Invalidate()

	h.logger.Info("import submitted",
		zap.String("request_id", requestID),
		zap.String("source", source),
		zap.Int("functions_imported", summary.FunctionsImported),
		zap.Int("events_imported", summary.EventsImported),
		zap.Int("invalid", summary.Invalid()))

	return &importOutcome{Request: req, Result: result, Summary: summary}, nil
}

func importErrorResponse(err error) (int, string) {
	var apiErr *openchain.APIError
	var statusErr *openchain.StatusError
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		return status, apiErr.Error()
	case errors.As(err, &statusErr):
		return statusErr.StatusCode, upstreamFailedMessage
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
