package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	"github.com/Brownie44l1/iris-api/internal/config"
	"github.com/Brownie44l1/iris-api/internal/handlers"
	"github.com/Brownie44l1/iris-api/internal/logger"
	"github.com/Brownie44l1/iris-api/internal/middleware"
)

const PrometheusSubsystemName = "iris_api"

func Init(cfg *config.Config, predictor handlers.Predictor) *gin.Engine {
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.RegisterJSONTagNames()

	r := gin.New()
	h := handlers.NewHandler(predictor)

	// Prometheus metrics.
	if cfg.Metrics.Enable {
		p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			return c.Request.URL.Path
		}
		p.Use(r)
	}

	// CORS
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) == 1 && cfg.CORS.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	// Middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.GinLogger))
	r.Use(middleware.Recovery(logger.GinLogger))
	r.Use(cors.New(corsConfig))

	// Router
	r.GET("/", h.Health)
	r.POST("/predict", h.Predict)
	r.GET("/model-info", h.ModelInfo)

	return r
}
