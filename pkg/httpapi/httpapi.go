// Package httpapi exposes the spelling advisor as JSON endpoints served with echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/bastiangx/wordcheck/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ShutdownTimeout bounds graceful shutdown in Serve.
const ShutdownTimeout = 5 * time.Second

// WordRequest is the body of check and custom-word requests.
type WordRequest struct {
	Word string `json:"word"`
}

// VerdictResponse is returned by POST /api/v1/check.
type VerdictResponse struct {
	Verdict     string   `json:"verdict"`
	Original    string   `json:"original"`
	Corrected   string   `json:"corrected"`
	Suggestions []string `json:"suggestions"`
}

// WordResponse is returned by the custom-word routes.
type WordResponse struct {
	Word   string `json:"word"`
	Status string `json:"status"`
}

// ErrorResponse is returned on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers serves the API routes.
type Handlers struct {
	advisor advisor.Advisor
	store   customdict.WordStore
	log     *log.Logger
}

// NewRouter builds an echo instance with all routes registered.
// store may be nil; the custom-word routes then answer 404.
func NewRouter(a advisor.Advisor, store customdict.WordStore) *echo.Echo {
	h := &Handlers{advisor: a, store: store, log: logger.New("http")}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(h.log))

	e.GET("/health", h.Health)
	api := e.Group("/api/v1")
	api.POST("/check", h.Check)
	api.POST("/custom-word", h.AddCustomWord)
	api.DELETE("/custom-word/:word", h.RemoveCustomWord)
	return e
}

func requestLogger(l *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	})
}

// Serve runs e on addr until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

// Health reports liveness.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Check evaluates the posted word.
func (h *Handlers) Check(c echo.Context) error {
	var req WordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	verdict, err := h.advisor.Evaluate(req.Word)
	if err != nil {
		code := server.StatusCode(err)
		if code >= http.StatusInternalServerError {
			h.log.Error("check failed", "word", req.Word, "err", err)
		}
		return c.JSON(code, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, VerdictResponse{
		Verdict:     verdict.Kind.String(),
		Original:    verdict.Original,
		Corrected:   verdict.Corrected,
		Suggestions: verdict.Suggestions,
	})
}

// AddCustomWord stores the posted word in the custom dictionary.
func (h *Handlers) AddCustomWord(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "custom dictionary not configured"})
	}
	var req WordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: advisor.ErrEmpty.Error()})
	}

	if err := h.store.Add(c.Request().Context(), word); err != nil {
		h.log.Error("add custom word", "word", word, "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, WordResponse{Word: word, Status: "added"})
}

// RemoveCustomWord deletes :word from the custom dictionary.
func (h *Handlers) RemoveCustomWord(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "custom dictionary not configured"})
	}
	word := strings.ToLower(strings.TrimSpace(c.Param("word")))
	if word == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: advisor.ErrEmpty.Error()})
	}

	if err := h.store.Remove(c.Request().Context(), word); err != nil {
		h.log.Error("remove custom word", "word", word, "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, WordResponse{Word: word, Status: "removed"})
}
