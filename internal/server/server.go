package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/realenhance/structural-validator/internal/validate"
)

// ServiceName is reported by the root metadata endpoint.
const ServiceName = "RealEnhance Structural Validator"

// Server wires the HTTP transport around the validation pipeline.
type Server struct {
	engine             *gin.Engine
	validator          *validate.Validator
	defaultSensitivity float64
	version            string
	log                zerolog.Logger
}

// New builds the router with all routes registered.
//
// defaultSensitivity is applied when a request omits the threshold;
// version is reported by GET /.
func New(validator *validate.Validator, defaultSensitivity float64, version string, log zerolog.Logger) *Server {
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{
		engine:             engine,
		validator:          validator,
		defaultSensitivity: defaultSensitivity,
		version:            version,
		log:                log,
	}

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.POST("/validate-structure", s.handleValidateStructure)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on the given port until SIGINT/SIGTERM, then shuts down
// gracefully with a 10s drain window.
func (s *Server) Run(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Int("port", port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
