package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signature-explorer/middleware"
	"signature-explorer/models"
	"signature-explorer/signature"
)

const (
	importPageTitle    = "Import signatures"
	importHistoryLimit = 5
)

type ImportPageData struct {
	Title   string
	Data    string
	Error   string
	Message string
	Rows    []signature.Row
	History []models.ImportRecord
}

func (h *Handler) ImportPage(c *gin.Context) {
	data := ImportPageData{
		Title: importPageTitle,
		Data:  importExamples[c.Query("example")],
	}
	h.renderImport(c, http.StatusOK, data)
}

func (h *Handler) SubmitImport(c *gin.Context) {
	raw := c.PostForm("data")
	data := ImportPageData{Title: importPageTitle, Data: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		data.Error = emptyImportMessage
		h.renderImport(c, http.StatusBadRequest, data)
		return
	}

	outcome, err := h.submitImport(c.Request.Context(), trimmed, sourceWeb, middleware.GetRequestID(c))
	if err != nil {
		_, msg := importErrorResponse(err)
		data.Error = "An error occurred: " + msg
		h.renderImport(c, http.StatusOK, data)
		return
	}

	data.Message = outcome.Summary.Message()
	data.Rows = signature.Rows(*outcome.Result)
	h.renderImport(c, http.StatusOK, data)
}

func (h *Handler) renderImport(c *gin.Context, status int, data ImportPageData) {
	history, err := h.history.Recent(c.Request.Context(), importHistoryLimit)
	if err != nil {
		h.logger.Warn("failed to load import history",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
	}
	data.History = history
	c.HTML(status, "import.html", data)
}
