package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riskforge/payrisk/internal/dtos"
	"github.com/riskforge/payrisk/internal/services"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/utils"
	"go.uber.org/zap"
)

type PredictHandler struct {
	logger    *zap.Logger
	predictor services.Predictor
}

// NewPredictHandler builds the prediction handler. A nil predictor means no
// model artifact was available at startup; requests then answer 503 until a
// model is trained and the process restarted.
func NewPredictHandler(logger *zap.Logger, predictor services.Predictor) *PredictHandler {
	return &PredictHandler{logger: logger, predictor: predictor}
}

// RegisterRoutes registers prediction routes on the provided Gin engine.
func (h *PredictHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/predict", h.Predict)
}

// Predict scores one raw KYC record and returns the thresholded decision
// with the failure probability.
func (h *PredictHandler) Predict(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		errResp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(errResp.Status, errResp)
		return
	}

	var req dtos.PredictRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		errResp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err))
		c.JSON(errResp.Status, errResp)
		return
	}

	if h.predictor == nil {
		errResp := pkg.ToErrorResponse(h.logger, traceID,
			pkg.NewAppError(pkg.ErrModelNotFoundCode, "no model loaded, train one first", pkg.ErrModelNotFound))
		c.JSON(errResp.Status, errResp)
		return
	}

	pred, err := h.predictor.Predict(c.Request.Context(), traceID, req.ToRecord())
	if err != nil {
		errResp := pkg.ToErrorResponse(h.logger, traceID, err)
		c.JSON(errResp.Status, errResp)
		return
	}

	risk := 0
	if pred.Failed {
		risk = 1
	}
	c.JSON(http.StatusOK, dtos.PredictResponse{
		PaymentFailureRisk: risk,
		FailureProbability: pred.Probability,
	})
}
