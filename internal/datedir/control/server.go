package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/datedir/internal/datedir/coordinator"
	"github.com/example/datedir/internal/datedir/settings"
)

const shutdownTimeout = 5 * time.Second

// ServerOptions configures a Server.
type ServerOptions struct {
	// Workers bounds how many operations run at once.
	Workers int
	Logger  *slog.Logger
	Metrics *Metrics
}

// Server exposes a Foreground over HTTP.
type Server struct {
	fg      coordinator.Foreground
	engine  *gin.Engine
	logger  *slog.Logger
	metrics *Metrics
}

type pathRequest struct {
	Path string `json:"path"`
}

type pathResponse struct {
	Path string `json:"path"`
}

type selectResponse struct {
	Path     string `json:"path"`
	Selected bool   `json:"selected"`
}

type autostartResponse struct {
	Enabled bool `json:"enabled"`
}

type healthResponse struct {
	Status string `json:"status"`
	PID    int    `json:"pid"`
}

// NewServer builds the route table for fg.
func NewServer(fg coordinator.Foreground, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), observe(logger, metrics))

	s := &Server{fg: fg, engine: engine, logger: logger, metrics: metrics}

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.GET("/v1/health", s.health)

	v1 := engine.Group("/v1", workerLimit(opts.Workers, metrics))
	v1.POST("/folders/today", s.createToday)
	v1.GET("/folders/today/status", s.todayStatus)
	v1.POST("/folders/open", s.openFolder)
	v1.GET("/settings", s.getSettings)
	v1.PUT("/settings", s.saveSettings)
	v1.POST("/validate", s.validate)
	v1.POST("/window/show", s.showWindow)
	v1.POST("/window/hide", s.hideWindow)
	v1.POST("/quit", s.quit)
	v1.GET("/autostart", s.autostartStatus)
	v1.POST("/autostart", s.enableAutostart)
	v1.DELETE("/autostart", s.disableAutostart)
	v1.POST("/dialog/folder", s.selectFolder)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen opens the control socket, replacing a stale one left by a crashed daemon. Callers
// must hold the instance lock.
func Listen(socketPath string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("restrict socket permissions: %w", err)
	}
	return ln, nil
}

// Serve answers requests on ln until ctx is done, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("control server shutdown", "error", err)
		}
	}()

	s.logger.Info("control API listening", "path", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", PID: os.Getpid()})
}

func (s *Server) createToday(c *gin.Context) {
	path, err := s.fg.CreateTodayFolder(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pathResponse{Path: path})
}

func (s *Server) todayStatus(c *gin.Context) {
	status, err := s.fg.TodayStatus(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) openFolder(c *gin.Context) {
	var req pathRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}
	}
	if err := s.fg.OpenFolder(c.Request.Context(), req.Path); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getSettings(c *gin.Context) {
	rec, err := s.fg.Settings(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) saveSettings(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		badRequest(c, "cannot read request body", err)
		return
	}
	rec, err := settings.Decode(data)
	if err != nil {
		badRequest(c, "invalid settings", err)
		return
	}
	if err := s.fg.SaveSettings(c.Request.Context(), rec); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) validate(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if err := s.fg.ValidateFolderPath(c.Request.Context(), req.Path); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) showWindow(c *gin.Context) {
	if err := s.fg.ShowWindow(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) hideWindow(c *gin.Context) {
	if err := s.fg.HideWindow(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// quit acknowledges before shutting down so the caller is not left waiting on a closing socket.
func (s *Server) quit(c *gin.Context) {
	c.Status(http.StatusAccepted)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
	if err := s.fg.Quit(context.WithoutCancel(c.Request.Context())); err != nil {
		s.logger.Error("quit failed", "request_id", c.GetString(requestIDKey), "error", err)
	}
}

func (s *Server) autostartStatus(c *gin.Context) {
	enabled, err := s.fg.AutostartEnabled(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, autostartResponse{Enabled: enabled})
}

func (s *Server) enableAutostart(c *gin.Context) {
	if err := s.fg.EnableAutostart(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) disableAutostart(c *gin.Context) {
	if err := s.fg.DisableAutostart(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) selectFolder(c *gin.Context) {
	path, ok, err := s.fg.SelectFolder(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, selectResponse{Path: path, Selected: ok})
}
