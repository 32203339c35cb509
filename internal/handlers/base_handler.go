package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskforge/payrisk/internal/dtos"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger      *zap.Logger
	modelLoaded func() bool
}

func NewBaseHandler(logger *zap.Logger, modelLoaded func() bool) *BaseHandler {
	return &BaseHandler{logger: logger, modelLoaded: modelLoaded}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", b.GetHome)
	r.GET("/health", b.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (b *BaseHandler) GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment Failure Prediction API is running.",
	})
}

func (b *BaseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dtos.HealthResponse{
		Status:      "ok",
		ModelLoaded: b.modelLoaded(),
	})
}
