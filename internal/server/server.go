package server

import (
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	"github.com/atikulmunna/logreport/internal/analyzer"
	"github.com/atikulmunna/logreport/internal/output"
	"github.com/atikulmunna/logreport/internal/report"
)

// Server serves reports over HTTP. Every request re-reads the log files,
// so nothing is cached between requests.
type Server struct {
	engine        *gin.Engine
	paths         []string
	defaultReport string
	workers       int
	log           logr.Logger
	addr          string
}

// Config holds the Server settings.
type Config struct {
	Addr          string
	Paths         []string
	DefaultReport string
	Workers       int
	Logger        logr.Logger
}

// New creates a report server.
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:        engine,
		paths:         cfg.Paths,
		defaultReport: cfg.DefaultReport,
		workers:       cfg.Workers,
		log:           cfg.Logger.WithName("server"),
		addr:          cfg.Addr,
	}
	if s.defaultReport == "" {
		s.defaultReport = report.HandlersName
	}

	s.setupRoutes()
	return s
}

// Handler exposes the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"files":  len(s.paths),
		})
	})

	s.engine.GET("/report", s.handleText)
	s.engine.GET("/api/report", s.handleJSON)
	s.engine.GET("/api/reports", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reports": report.Names()})
	})

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

func (s *Server) handleText(c *gin.Context) {
	res, ok := s.generate(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, "%s\n", res.Text)
}

func (s *Server) handleJSON(c *gin.Context) {
	res, ok := s.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.NewDocument(res))
}

// generate runs the report named by the "kind" query parameter and writes
// an error response on failure.
func (s *Server) generate(c *gin.Context) (*analyzer.Result, bool) {
	kind := c.DefaultQuery("kind", s.defaultReport)

	res, err := analyzer.Generate(c.Request.Context(), s.paths, kind, analyzer.Options{
		Workers: s.workers,
		Logger:  s.log,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, report.ErrUnknownReport) {
			status = http.StatusBadRequest
		} else {
			s.log.Error(err, "report generation failed", "kind", kind)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return res, true
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	s.log.Info("serving reports", "addr", s.addr, "files", len(s.paths))
	return s.engine.Run(s.addr)
}
