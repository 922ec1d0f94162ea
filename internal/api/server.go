// Package api serves move generation queries over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/board"
	"github.com/M1Va1/Stockdoge/internal/config"
	"github.com/M1Va1/Stockdoge/internal/magicstore"
)

const requestIDHeader = "X-Request-Id"

// Server holds the router and what the handlers share.
type Server struct {
	conf   config.HTTPConf
	magics *board.Magics
	store  *magicstore.Store
	engine *gin.Engine
}

// NewServer builds the router. store may be nil, which disables the perft
// cache.
func NewServer(c config.HTTPConf, magics *board.Magics, store *magicstore.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		conf:   c,
		magics: magics,
		store:  store,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	if c.Pprof {
		pprof.Register(s.engine)
	}

	v1 := s.engine.Group("/v1")
	v1.GET("/moves", s.handleMoves)
	v1.GET("/check", s.handleCheck)
	v1.GET("/perft", s.handlePerft)
	v1.GET("/diagram.png", s.handleDiagramPNG)
	v1.GET("/diagram.svg", s.handleDiagramSVG)
	return s
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.conf.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logx.Infof("listening on %s", s.conf.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger tags every request with an id and logs it on completion.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Header(requestIDHeader, id)
		ctx := logx.ContextWithFields(c.Request.Context(), logx.Field("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logger := logx.WithContext(ctx).WithDuration(time.Since(start))
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Errorf("%s %s -> %d", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status())
			return
		}
		logger.Infof("%s %s -> %d", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status())
	}
}
