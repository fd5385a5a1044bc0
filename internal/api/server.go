// Package api is the HTTP adapter: routing, request decoding, error-to-status
// mapping and the middleware chain.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/config"
	"github.com/ambusos/ambusos-api/internal/projection"
	"github.com/ambusos/ambusos-api/internal/service"
	"github.com/ambusos/ambusos-api/internal/store"
)

// Server is the HTTP server over the dispatch services.
type Server struct {
	cfg    config.ServerConfig
	router   *gin.Engine
	server   *http.Server
	limiters *ipLimiters
	log      *logrus.Logger

	store       store.Store
	catalog     *service.CatalogService
	personnel   *service.PersonnelService
	fleet       *service.FleetService
	assignments *service.AssignmentService
	accidents   *service.AccidentService
	project     *projection.Projector
}

// Services bundles the wired service layer handed to the server.
type Services struct {
	Store       store.Store
	Catalog     *service.CatalogService
	Personnel   *service.PersonnelService
	Fleet       *service.FleetService
	Assignments *service.AssignmentService
	Accidents   *service.AccidentService
	Projector   *projection.Projector
}

// NewServer creates the HTTP server and mounts all routes.
func NewServer(cfg config.Config, svcs Services, logger *logrus.Logger) *Server {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(logger))
	router.Use(securityHeaders())
	router.Use(corsMiddleware())
	router.Use(requestTimeout(cfg.Server.RequestTimeout))

	var limiters *ipLimiters
	if cfg.Server.RateLimit > 0 {
		limiters = newIPLimiters(cfg.Server.RateLimit, cfg.Server.RateBurst)
		router.Use(rateLimiter(limiters))
	}

	s := &Server{
		cfg:         cfg.Server,
		router:      router,
		limiters:    limiters,
		log:         logger,
		store:       svcs.Store,
		catalog:     svcs.Catalog,
		personnel:   svcs.Personnel,
		fleet:       svcs.Fleet,
		assignments: svcs.Assignments,
		accidents:   svcs.Accidents,
		project:     svcs.Projector,
	}
	s.setupRoutes()
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if s.limiters != nil {
		defer s.limiters.close()
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/catalogos", s.handleCatalogs)

	s.router.POST("/signin", s.handleSignIn)
	s.router.POST("/login", s.handleLogin)

	roles := s.router.Group("/roles")
	{
		roles.POST("", s.handleCreateRole)
		roles.GET("", s.handleListRoles)
		roles.GET("/:id", s.handleGetRole)
		roles.DELETE("/:id", s.handleDeleteRole)
	}

	personal := s.router.Group("/personal")
	{
		personal.GET("", s.handleListPersonnel)
		personal.GET("/:id", s.handleGetPersonnel)
		personal.PUT("/:id", s.handleUpdatePersonnel)
		personal.DELETE("/:id", s.handleDeletePersonnel)
	}

	hospitales := s.router.Group("/hospitales")
	{
		hospitales.POST("", s.handleCreateHospital)
		hospitales.GET("", s.handleListHospitals)
		hospitales.GET("/:id", s.handleGetHospital)
		hospitales.PUT("/:id", s.handleUpdateHospital)
		hospitales.DELETE("/:id", s.handleDeleteHospital)
	}

	ambulancias := s.router.Group("/ambulancias")
	{
		ambulancias.POST("", s.handleCreateAmbulance)
		ambulancias.GET("", s.handleListAmbulances)
		ambulancias.GET("/:id", s.handleGetAmbulance)
		ambulancias.PUT("/:id", s.handleUpdateAmbulance)
		ambulancias.DELETE("/:id", s.handleDeleteAmbulance)
	}

	asignacion := s.router.Group("/asignacion")
	{
		asignacion.POST("", s.handleAssign)
		asignacion.GET("", s.handleListAssignments)
		asignacion.GET("/:id", s.handleGetAssignment)
		asignacion.DELETE("/:id", s.handleUnassign)
	}

	accidentes := s.router.Group("/accidentes")
	{
		accidentes.POST("", s.handleReportAccident)
		accidentes.GET("", s.handleListAccidents)
		accidentes.GET("/:id", s.handleGetAccident)
		accidentes.PUT("/:id", s.handleUpdateAccident)
		accidentes.DELETE("/:id", s.handleDeleteAccident)
		accidentes.GET("/:id/viajes", s.handleAccidentTrips)
	}

	reportes := s.router.Group("/reportes")
	{
		reportes.POST("", s.handleCreateTrip)
		reportes.GET("", s.handleListTrips)
		reportes.GET("/:id", s.handleGetTrip)
		reportes.DELETE("/:id", s.handleDeleteTrip)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"
	if err := s.store.Ping(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = "down"
	}
	c.JSON(status, gin.H{
		"status":    dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
