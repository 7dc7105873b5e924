package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/worldobjects/internal/definition"
	"github.com/annel0/worldobjects/internal/logging"
	"github.com/annel0/worldobjects/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RestServer отдаёт определения объектов из кеша по HTTP
type RestServer struct {
	router  *gin.Engine
	server  *http.Server
	defs    *definition.Cache
	limiter *middleware.RateLimiter
	metrics *ServerMetrics
	log     *logging.Logger
	stop    chan struct{}
}

// Config содержит конфигурацию REST сервера
type Config struct {
	Port        string                     // адрес вида ":8089"
	Definitions *definition.Cache          // кеш определений
	Registry    *prometheus.Registry       // nil - дефолтный регистр
	RateLimit   middleware.RateLimitConfig // ограничение частоты на IP
	ServiceName string                     // имя сервиса для otelgin и метрик
}

// GenericResponse - общий формат ответа
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRestServer создает REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8089"
	}
	if config.ServiceName == "" {
		config.ServiceName = "objdef"
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(config.ServiceName))
	router.Use(middleware.NewRequestLogger(nil).Handler())

	promMw := middleware.NewPrometheusMiddleware(config.ServiceName, config.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	rs := &RestServer{
		router:  router,
		defs:    config.Definitions,
		limiter: middleware.NewRateLimiter(config.RateLimit),
		metrics: NewServerMetrics(),
		log:     logging.GetComponentLogger("api"),
		stop:    make(chan struct{}),
	}
	rs.server = &http.Server{
		Addr:              config.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rs.setupRoutes()
	return rs
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)
	rs.router.GET("/status", rs.handleStatus)

	api := rs.router.Group("/api")
	api.Use(rs.limiter.Handler())
	{
		api.GET("/definitions", rs.handleListDefinitions)
		api.GET("/definitions/:id", rs.handleGetDefinition)
	}
}

// Handler возвращает http.Handler сервера
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (rs *RestServer) handleStatus(c *gin.Context) {
	snap, err := rs.metrics.Snapshot()
	if err != nil {
		rs.log.Debug("status: %v", err)
	}

	status := map[string]interface{}{
		"process": snap,
	}
	if rs.defs != nil {
		status["definitions"] = map[string]interface{}{
			"cached": rs.defs.Len(),
		}
	}

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: status})
}

func (rs *RestServer) handleListDefinitions(c *gin.Context) {
	if rs.defs == nil {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{Message: "кеш определений не настроен"})
		return
	}
	ids := rs.defs.Known()
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "ok",
		Data: map[string]interface{}{
			"ids":   ids,
			"total": len(ids),
		},
	})
}

func (rs *RestServer) handleGetDefinition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Message: "id должен быть целым числом"})
		return
	}
	if rs.defs == nil {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{Message: "кеш определений не настроен"})
		return
	}

	def, err := rs.defs.Load(id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "ok", Data: def})
	case errors.Is(err, definition.ErrNoRecord):
		c.JSON(http.StatusNotFound, GenericResponse{Message: fmt.Sprintf("определение %d не найдено", id)})
	default:
		rs.log.Debug("definition %d: %v", id, err)
		c.JSON(http.StatusUnprocessableEntity, GenericResponse{Message: fmt.Sprintf("запись %d недоступна", id)})
	}
}

// Start запускает REST сервер и блокируется до Stop
func (rs *RestServer) Start() error {
	go rs.limiter.Run(rs.stop)
	rs.log.Info("REST API listening on %s", rs.server.Addr)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("REST сервер: %w", err)
	}
	return nil
}

// Stop останавливает сервер, дожидаясь текущих запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	select {
	case <-rs.stop:
	default:
		close(rs.stop)
	}
	return rs.server.Shutdown(ctx)
}
