package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/job-matcher/internal/extract"
	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/theirstack"
	"go.uber.org/zap"
)

// defaultRankConcurrency bounds how many listings are scored in parallel
// per request.
const defaultRankConcurrency = 8

// JobSource supplies job listings for a set of search preferences.
// Implemented by the TheirStack client; tests use stubs.
type JobSource interface {
	Search(params *theirstack.SearchParams) (*theirstack.Jobs, error)
}

type Server struct {
	extractor extract.Extractor
	source    JobSource
	sessions  *SessionStore
	matchCfg  *match.Config
	logger    *zap.Logger
	engine    *gin.Engine
}

func New(extractor extract.Extractor, source JobSource, matchCfg *match.Config, logger *zap.Logger) (*Server, error) {
	if matchCfg == nil {
		matchCfg = match.DefaultConfig()
	}
	if err := matchCfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	server := &Server{
		extractor: extractor,
		source:    source,
		sessions:  NewSessionStore(),
		matchCfg:  matchCfg,
		logger:    logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", server.handleHealth)

	api := engine.Group("/api")
	{
		api.POST("/sessions", server.handleCreateSession)
		api.DELETE("/sessions/:id", server.handleDeleteSession)
		api.POST("/sessions/:id/resume", server.handleUploadResume)
		api.POST("/sessions/:id/search", server.handleSearch)
		api.GET("/sessions/:id/matches", server.handleMatches)
	}

	server.engine = engine
	return server, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the listener fails or the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
