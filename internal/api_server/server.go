package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/config"
	handlers "github.com/kubev2v/rvtools-assessor/internal/handlers/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/proxy"
	"github.com/kubev2v/rvtools-assessor/internal/service"
	"github.com/kubev2v/rvtools-assessor/pkg/log"
	"github.com/kubev2v/rvtools-assessor/pkg/requestid"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	listener net.Listener
	logger   *zap.Logger
}

// New returns a new instance of the assessor API server.
func New(cfg *config.Config, listener net.Listener, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		listener: listener,
		logger:   logger,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	defaultMode := api.WaveMode(s.cfg.Service.WaveMode)
	assessmentSrv := service.NewAssessmentService(defaultMode)
	session := service.NewSession(assessmentSrv, defaultMode)

	var proxyClient *proxy.Client
	if s.cfg.Proxy.BaseUrl != "" {
		proxyClient = proxy.NewClient(proxy.Config{
			BaseURL:    s.cfg.Proxy.BaseUrl,
			Timeout:    s.cfg.Proxy.Timeout,
			MaxRetries: s.cfg.Proxy.MaxRetries,
			CacheTTL:   s.cfg.Proxy.CacheTTL,
		})
		proxyClient.Cache().StartJanitor(ctx, s.cfg.Proxy.CacheJanitor)
	}

	handler := handlers.NewServiceHandler(session, s.cfg.Service.MaxUploadMiB, proxyClient)

	router := chi.NewRouter()
	router.Use(
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		chiMiddleware.RequestID,
		requestid.Middleware,
		log.Logger(s.logger, "http"),
		chiMiddleware.Recoverer,
	)

	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    s.cfg.Service.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("serving assessor api: %s", s.cfg.Service.Address)
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
