// Package api exposes the writing-assistant operations over HTTP, plus the
// embedded web editor that drives them. The server holds no session state;
// each request is self-contained and the browser owns its document.
package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/device"
	"github.com/quill-lm/quill/internal/hub"
	"github.com/quill-lm/quill/internal/logger"
	"github.com/quill-lm/quill/internal/session"
	"github.com/quill-lm/quill/internal/version"
	"github.com/quill-lm/quill/internal/webui"
)

// Config fixes the server's models and placement at startup. The device is
// already resolved; it decides whether rewriting is offered at all.
type Config struct {
	Device       string
	RewriteModel string
	RewriteEOS   int
	SuggestModel string
	SuggestEOS   int

	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

type Server struct {
	cfg      Config
	provider *hub.Provider
	counter  assist.TokenCounter
	log      logger.Logger
	clock    func() time.Time
}

func NewServer(cfg Config, provider *hub.Provider, counter assist.TokenCounter, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		cfg:      cfg,
		provider: provider,
		counter:  counter,
		log:      log,
		clock:    time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(RequestID())
	if s.cfg.RateLimit > 0 {
		e.Use(RateLimit(s.cfg.RateLimit, s.cfg.RateBurst))
	}

	e.POST("/v1/rewrite", s.handleRewrite)
	e.POST("/v1/suggest", s.handleSuggest)
	e.GET("/v1/tasks", s.handleTasks)
	e.GET("/healthz", s.handleHealth)

	e.GET("/", s.handleStatic("index.html"))
	for _, name := range webui.Assets() {
		e.GET("/"+name, s.handleStatic(name))
	}
}

// handleStatic serves one embedded editor file.
func (s *Server) handleStatic(name string) echo.HandlerFunc {
	return func(c *echo.Context) error {
		data, err := webui.Read(name)
		if err != nil {
			return writeError(c, http.StatusNotFound, "not_found_error", "no such file", "")
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, webui.ContentType(name))
		res.WriteHeader(http.StatusOK)
		_, err = res.Write(data)
		return err
	}
}

func (s *Server) rewriteAvailable() bool {
	return s.cfg.Device == device.CUDA
}

func (s *Server) handleRewrite(c *echo.Context) error {
	if !s.rewriteAvailable() {
		return writeUnavailable(c, "rewrite requires an accelerator; suggestions remain available")
	}
	req, err := decodeJSON[RewriteRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := req.validate(); err != nil {
		return writeBadRequest(c, err.Error())
	}
	req.applyDefaults()

	task := assist.Task(req.Task)
	if !assist.Known(task) {
		// Unknown tasks run the grammar instruction; report what ran.
		task = assist.TaskGrammar
	}

	start := s.clock()
	handle := s.provider.Handle(s.cfg.RewriteModel, s.cfg.Device)
	rewriter := assist.NewRewriter(handle, s.cfg.RewriteEOS)
	out, err := rewriter.Rewrite(c.Request().Context(), assist.RewriteRequest{
		Task:      task,
		Text:      req.Text,
		Strategy:  req.Decoding,
		MaxLength: req.MaxLength,
		LowMemory: *req.LowMemory,
	})
	if err != nil {
		s.log.Error("rewrite failed", "task", string(task), "error", err)
		return writeProviderError(c, err)
	}

	return c.JSON(http.StatusOK, RewriteResponse{
		Text:      out,
		Task:      string(task),
		Model:     s.cfg.RewriteModel,
		Device:    s.cfg.Device,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleSuggest(c *echo.Context) error {
	req, err := decodeJSON[SuggestRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := req.validate(); err != nil {
		return writeBadRequest(c, err.Error())
	}
	req.applyDefaults()

	start := s.clock()
	handle := s.provider.Handle(s.cfg.SuggestModel, s.cfg.Device)
	suggester := assist.NewSuggester(handle, s.counter, s.cfg.SuggestEOS)
	suggestions, err := suggester.Suggest(c.Request().Context(), assist.SuggestRequest{
		Text:      req.Text,
		Count:     req.Count,
		TokensPer: req.TokensPer,
		Strategy:  req.Decoding,
		LowMemory: *req.LowMemory,
	})
	if err != nil {
		s.log.Error("suggest failed", "error", err)
		return writeProviderError(c, err)
	}

	out := make([]Suggestion, 0, len(suggestions))
	for _, text := range suggestions {
		out = append(out, Suggestion{
			ID:    uuid.NewString(),
			Text:  text,
			Label: session.Placeholder(text),
		})
	}
	return c.JSON(http.StatusOK, SuggestResponse{
		Suggestions: out,
		Model:       s.cfg.SuggestModel,
		Device:      s.cfg.Device,
		ElapsedMS:   time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleTasks(c *echo.Context) error {
	tasks := assist.Tasks()
	infos := make([]TaskInfo, 0, len(tasks))
	for _, task := range tasks {
		infos = append(infos, TaskInfo{
			ID:          string(task),
			Label:       task.Label(),
			Instruction: task.Instruction(),
		})
	}
	return c.JSON(http.StatusOK, TasksResponse{
		Tasks:            infos,
		RewriteAvailable: s.rewriteAvailable(),
		Device:           s.cfg.Device,
	})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Device:  s.cfg.Device,
		Version: version.String(),
	})
}
