package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	allocationdomain "github.com/smallbiznis/motorpool/internal/allocation/domain"
	"github.com/smallbiznis/motorpool/internal/config"
	obslogger "github.com/smallbiznis/motorpool/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/motorpool/internal/observability/metrics"
	obstracing "github.com/smallbiznis/motorpool/internal/observability/tracing"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

// StorePinger reports whether the persistence engine is reachable.
// *mongo.Client satisfies it.
type StorePinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	store         StorePinger
	allocationSvc allocationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Client        *mongo.Client
	AllocationSvc allocationdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		store:         p.Client,
		allocationSvc: p.AllocationSvc,
	}
	s.RegisterAPIRoutes()
	return s
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthcheck", s.Healthcheck)

	allocations := s.engine.Group("/allocations")
	allocations.POST("/", s.CreateAllocation)
	allocations.GET("/", s.ListAllocations)
	allocations.GET("/history/", s.ListAllocationHistory)
	allocations.GET("/:id", s.GetAllocationByID)
	allocations.PUT("/:id", s.UpdateAllocation)
	allocations.DELETE("/:id", s.DeleteAllocation)
}
