package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Brownie44l1/iris-api/internal/logger"
	"github.com/Brownie44l1/iris-api/internal/metrics"
	"github.com/Brownie44l1/iris-api/internal/model"
)

const healthMessage = "Iris Classification API is running"

// Predictor is the part of model.Server the handlers use.
type Predictor interface {
	Predict(in model.PredictionInput) (*model.PredictionOutput, error)
	Info() model.ModelInfo
}

type Handler struct {
	predictor Predictor
}

func NewHandler(predictor Predictor) *Handler {
	return &Handler{
		predictor: predictor,
	}
}

// PredictRequest fields are pointers so that binding can tell a missing
// field from an explicit zero.
type PredictRequest struct {
	SepalLength *float64 `json:"sepal_length" binding:"required"`
	SepalWidth  *float64 `json:"sepal_width" binding:"required"`
	PetalLength *float64 `json:"petal_length" binding:"required"`
	PetalWidth  *float64 `json:"petal_width" binding:"required"`
}

func (r *PredictRequest) input() model.PredictionInput {
	return model.PredictionInput{
		SepalLength: *r.SepalLength,
		SepalWidth:  *r.SepalWidth,
		PetalLength: *r.PetalLength,
		PetalWidth:  *r.PetalWidth,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HTTPError struct {
	Detail string `json:"detail"`
}

func (h *Handler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: healthMessage,
	})
}

func (h *Handler) Predict(ctx *gin.Context) {
	var req PredictRequest
	if err := bindJSON(ctx, &req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, ValidationError{Detail: validationDetails(err)})
		return
	}

	result, err := h.predictor.Predict(req.input())
	if err != nil {
		metrics.PredictFailureCount.Inc()
		logger.Warnf("prediction error: %v", err)
		ctx.JSON(http.StatusBadRequest, HTTPError{
			Detail: fmt.Sprintf("Prediction error: %s", err.Error()),
		})
		return
	}

	metrics.PredictCount.WithLabelValues(result.Prediction).Inc()
	metrics.PredictConfidence.Observe(result.Confidence)
	ctx.JSON(http.StatusOK, result)
}

func (h *Handler) ModelInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.predictor.Info())
}
