// Package web serves the pattern form over HTTP.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkoosis/trigen/internal/config"
	"github.com/dkoosis/trigen/internal/service"
	"github.com/dkoosis/trigen/pkg/render"
	"github.com/dkoosis/trigen/pkg/shape"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server is the HTTP server for the pattern form.
type Server struct {
	svc      *service.Service
	settings *config.Settings
	log      *slog.Logger
	srv      *http.Server
}

// NewServer creates a server. settings supplies the form's initial values.
func NewServer(svc *service.Service, settings *config.Settings, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, settings: settings, log: log}
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /{$}", s.handleGenerate)
	mux.HandleFunc("POST /api/pattern", s.handleAPI)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type shapeOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Shapes     []shapeOption
	Rows       string
	Symbol     string
	MaxRows    int
	Persisting bool
	Error      string
	Warning    string
	Success    string
	Title      string
	Pattern    string
}

func (s *Server) page(in shape.Input) pageData {
	selected, _ := shape.Parse(in.Shape)
	opts := make([]shapeOption, 0, 6)
	for _, sh := range shape.All() {
		opts = append(opts, shapeOption{Value: string(sh), Label: sh.Label(), Selected: sh == selected})
	}
	return pageData{
		Shapes:     opts,
		Rows:       in.Rows,
		Symbol:     in.Symbol,
		MaxRows:    s.svc.MaxRows(),
		Persisting: s.svc.Persisting(),
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	data := s.page(shape.Input{
		Shape:  s.settings.Shape,
		Rows:   itoa(s.settings.Rows),
		Symbol: s.settings.Symbol,
	})
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	in := shape.Input{
		Shape:  r.PostFormValue("shape"),
		Rows:   r.PostFormValue("rows"),
		Symbol: r.PostFormValue("symbol"),
	}
	data := s.page(in)

	out, err := s.svc.Generate(r.Context(), in)
	if err != nil {
		data.Error = err.Error()
		s.render(w, http.StatusUnprocessableEntity, data)
		return
	}
	s.logOutcome(out)

	switch kind, msg := out.StoreMessage(); kind {
	case "warning":
		data.Warning = msg
	case "success":
		data.Success = msg
	}
	if out.Visible() {
		data.Title = out.Pattern.Request.Shape.Label()
		data.Pattern = out.Pattern.Result.String()
	}
	s.render(w, http.StatusOK, data)
}

type apiResponse struct {
	Pattern any    `json:"pattern,omitempty"`
	Stored  bool   `json:"stored"`
	Warning string `json:"warning,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// handleAPI generates and stores a pattern from form-encoded fields and
// answers with its JSON document. It is POST only because it writes.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "bad form"})
		return
	}
	out, err := s.svc.Generate(r.Context(), shape.Input{
		Shape:  r.PostFormValue("shape"),
		Rows:   r.PostFormValue("rows"),
		Symbol: r.PostFormValue("symbol"),
	})
	if err != nil {
		resp := apiError{Error: err.Error()}
		var ve *shape.ValidationError
		if errors.As(err, &ve) {
			resp.Field = ve.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	s.logOutcome(out)

	_, msg := out.StoreMessage()
	if !out.Visible() {
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: msg})
		return
	}
	resp := apiResponse{Pattern: render.Document(out.Pattern), Stored: out.Stored}
	if out.StoreErr != nil {
		resp.Warning = msg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logOutcome(out service.Outcome) {
	req := out.Pattern.Request
	if out.StoreErr != nil {
		s.log.Warn("pattern not stored", "shape", req.Shape, "rows", req.Rows, "error", out.StoreErr)
		return
	}
	s.log.Debug("pattern generated", "shape", req.Shape, "rows", req.Rows, "stored", out.Stored)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("template render failed", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
