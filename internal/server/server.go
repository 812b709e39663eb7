// Package server exposes the claim extraction service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/extract"
	"github.com/claimsight/claimsight/internal/metrics"
	"github.com/claimsight/claimsight/internal/model"
	"github.com/claimsight/claimsight/internal/ocr"
	"github.com/claimsight/claimsight/internal/pipeline"
	"github.com/claimsight/claimsight/internal/qa"
	"github.com/claimsight/claimsight/internal/store"
	"github.com/claimsight/claimsight/internal/validate"
)

// Server wires the pipeline and document store behind the HTTP API.
type Server struct {
	echo     *echo.Echo
	cfg      *model.Config
	logger   zerolog.Logger
	pipeline *pipeline.Pipeline
	store    *store.Store
	metrics  *metrics.Metrics
}

// New builds the server with its middleware chain and routes.
func New(cfg *model.Config, p *pipeline.Pipeline, st *store.Store, m *metrics.Metrics, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestID())
	e.Use(Logger(logger))
	e.Use(Recovery(logger))
	e.Use(Metrics(m))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if cfg.Server.RateLimitRPS > 0 {
		e.Use(RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}

	s := &Server{
		echo:     e,
		cfg:      cfg,
		logger:   logger,
		pipeline: p,
		store:    st,
		metrics:  m,
	}

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)
	e.GET("/health/storage", s.handleStorageHealth)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.POST("/extract", s.handleExtract)
	e.POST("/ask", s.handleAsk)

	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info().Str("addr", addr).Msg("starting server")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ExtractResponse is the /extract payload: the claim fields flattened
// alongside the document id, OCR mode, and storage metadata.
type ExtractResponse struct {
	DocumentID string   `json:"document_id"`
	OCRMode    ocr.Mode `json:"ocr_mode"`
	model.ClaimRecord
	Metadata model.DocumentMetadata `json:"metadata"`
}

// AskRequest is the /ask request body.
type AskRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

// AskResponse is the /ask payload.
type AskResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "claimsight",
		"endpoints": map[string]string{
			"POST /extract":       "upload a claim document and extract its fields",
			"POST /ask":           "ask about a stored claim document",
			"GET /health":         "service liveness",
			"GET /health/storage": "document store statistics",
			"GET /metrics":        "Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStorageHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Stats())
}

func (s *Server) handleExtract(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "no file provided"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	result, err := s.pipeline.Process(c.Request().Context(), ocr.Document{
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return s.mapError(c, err)
	}

	id := uuid.NewString()
	stored := s.store.Put(id, result.Claim)

	s.metrics.DocumentsProcessed.Inc()
	s.metrics.DocumentsInStorage.Set(float64(s.store.Stats().TotalDocuments))

	s.logger.Info().
		Str("document_id", id).
		Str("ocr_mode", string(result.Mode)).
		Str("summary", qa.Summary(result.Claim)).
		Msg("document extracted")

	return c.JSON(http.StatusOK, ExtractResponse{
		DocumentID:  id,
		OCRMode:     result.Mode,
		ClaimRecord: result.Claim,
		Metadata:    stored.Metadata,
	})
}

func (s *Server) handleAsk(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := validate.DocumentID(req.DocumentID); err != nil {
		return s.mapError(c, err)
	}
	if err := validate.Question(req.Question); err != nil {
		return s.mapError(c, err)
	}

	// Fixed processing delay, interruptible by client disconnect.
	if s.cfg.Server.AskDelay > 0 {
		select {
		case <-time.After(s.cfg.Server.AskDelay):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	doc, err := s.store.Get(req.DocumentID)
	if err != nil {
		return s.mapError(c, err)
	}

	// Whatever was asked, the service answers the one question it knows.
	answer := qa.Answer(doc.Claim)

	s.logger.Info().
		Str("document_id", req.DocumentID).
		Str("question", qa.FixedQuestion).
		Msg("question answered")

	return c.JSON(http.StatusOK, AskResponse{Answer: answer})
}

// mapError translates domain errors to HTTP status codes.
func (s *Server) mapError(c echo.Context, err error) error {
	var validationErr *validate.Error
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Msg})
	}

	var notFoundErr *store.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	}

	var extractionErr *extract.ExtractionError
	if errors.As(err, &extractionErr) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: extractionErr.Error()})
	}

	s.logger.Error().Err(err).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
