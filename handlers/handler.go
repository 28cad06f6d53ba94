package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"signature-explorer/cache"
	"signature-explorer/database"
	"signature-explorer/middleware"
	"signature-explorer/openchain"
	"signature-explorer/web"
)

const (
	jsonContentType = "application/json; charset=utf-8"

	defaultResultLimit = 50
)

// Options wires a Handler. Stats and History may be nil to disable caching and
// import history.
type Options struct {
	Client      *openchain.Client
	Stats       *cache.Stats
	History     *database.History
	Logger      *zap.Logger
	ResultLimit int
}

type Handler struct {
	client      *openchain.Client
	stats       *cache.Stats
	history     *database.History
	logger      *zap.Logger
	resultLimit int
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}
	return &Handler{
		client:      opts.Client,
		stats:       opts.Stats,
		history:     opts.History,
		logger:      logger,
		resultLimit: limit,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/import", h.ImportPage)
	r.POST("/import", h.SubmitImport)
	r.GET("/tools/abi", h.ABITools)
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/search", h.SearchAPI)
		api.GET("/lookup", h.LookupAPI)
		api.GET("/stats", h.StatsAPI)
		api.POST("/import", h.ImportAPI)
		api.GET("/history", h.HistoryAPI)
	}

	r.NoRoute(h.NotFound)
}

// NewRouter builds the full engine: middleware, templates, routes and /metrics.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger), middleware.Metrics())
	r.SetHTMLTemplate(web.Templates())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.Register(r)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Title": "Page not found"})
}

func (h *Handler) ABITools(c *gin.Context) {
	c.HTML(http.StatusOK, "abi.html", gin.H{"Title": "ABI tools"})
}
