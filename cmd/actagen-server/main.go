// Command actagen-server serves the acta generator as a web application:
// one editable form per kind, inline validation, an HTML preview, a print
// view, and PDF download. All interactivity is plain form posts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/export"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/orchestrator"
	"github.com/modo-caracas/actagen/pkg/render"
	"github.com/modo-caracas/actagen/pkg/renderers/htmldoc"
	"github.com/modo-caracas/actagen/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Error("configure server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.run(ctx); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

type server struct {
	cfg      Config
	logger   *slog.Logger
	gen      *orchestrator.Orchestrator
	renderer *htmldoc.Renderer
	exporter export.Exporter

	mu       sync.Mutex
	sessions map[acta.Kind]*session.Session
}

func newServer(cfg Config, logger *slog.Logger) (*server, error) {
	rendererOpts := []htmldoc.Option{}
	if cfg.LogoMarkup != "" {
		rendererOpts = append(rendererOpts, htmldoc.WithLogoMarkup(cfg.LogoMarkup))
	}
	renderer, err := htmldoc.New(rendererOpts...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	exporterOpts := []export.PDFOption{}
	if cfg.LogoJPEG != "" {
		data, err := os.ReadFile(cfg.LogoJPEG)
		if err != nil {
			return nil, fmt.Errorf("read logo jpeg: %w", err)
		}
		exporterOpts = append(exporterOpts, export.WithLogoJPEG(data))
	}
	exporter := export.NewPDF(exporterOpts...)

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithExporter(exporter),
	)

	srv := &server{
		cfg:      cfg,
		logger:   logger,
		gen:      gen,
		renderer: renderer,
		exporter: exporter,
		sessions: make(map[acta.Kind]*session.Session),
	}
	for _, spec := range acta.Specs() {
		sess, err := gen.Session(spec.Kind)
		if err != nil {
			return nil, err
		}
		srv.sessions[spec.Kind] = sess
	}
	return srv, nil
}

func (s *server) run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /actas/{kind}", s.handlePage)
	mux.HandleFunc("POST /actas/{kind}", s.handleSubmit)
	mux.HandleFunc("POST /actas/{kind}/items", s.handleAddItem)
	mux.HandleFunc("POST /actas/{kind}/items/{id}/delete", s.handleRemoveItem)
	mux.HandleFunc("GET /actas/{kind}/pdf", s.handlePDF)
	mux.HandleFunc("GET /actas/{kind}/print", s.handlePrint)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(htmldoc.AssetsFS())))
	return s.logRequests(mux)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/actas/"+string(acta.KindEntrega), http.StatusSeeOther)
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderPage(w, r, sess, "")
}

func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bind(w, r, sess) {
		return
	}
	_, errs := sess.Submit()
	notice := ""
	if len(errs) > 0 {
		notice = "El acta tiene errores. Revise los campos marcados."
	}
	s.renderPage(w, r, sess, notice)
}

func (s *server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.bind(w, r, sess) {
		sess.AddItem()
		s.mu.Unlock()
		http.Redirect(w, r, "/actas/"+r.PathValue("kind"), http.StatusSeeOther)
		return
	}
	s.mu.Unlock()
}

func (s *server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "identificador inválido", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.bind(w, r, sess) {
		sess.RemoveItem(id)
		s.mu.Unlock()
		http.Redirect(w, r, "/actas/"+r.PathValue("kind"), http.StatusSeeOther)
		return
	}
	s.mu.Unlock()
}

func (s *server) handlePDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	file, err := sess.Export(r.Context(), s.exporter)
	s.mu.Unlock()
	if err != nil {
		s.exportError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	if _, err := w.Write(file.Data); err != nil {
		s.logger.Error("write pdf", "error", err)
	}
}

func (s *server) handlePrint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	page, err := sess.PrintView(r.Context(), s.renderer)
	s.mu.Unlock()
	if err != nil {
		s.exportError(w, err)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	if _, err := w.Write(page); err != nil {
		s.logger.Error("write print view", "error", err)
	}
}

func (s *server) exportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNothingToExport):
		http.Error(w, "No hay acta para exportar", http.StatusConflict)
	case errors.Is(err, session.ErrExportInFlight):
		http.Error(w, "Exportación en curso", http.StatusConflict)
	default:
		s.logger.Error("export", "error", err)
		http.Error(w, "error interno", http.StatusInternalServerError)
	}
}

func (s *server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	kind, err := acta.ParseKind(r.PathValue("kind"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	s.mu.Lock()
	sess := s.sessions[kind]
	s.mu.Unlock()
	return sess, true
}

// bind copies posted values into the session: header fields by name, item
// columns by the item.{id}.{column} input naming scheme.
func (s *server) bind(w http.ResponseWriter, r *http.Request, sess *session.Session) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulario inválido", http.StatusBadRequest)
		return false
	}

	for _, field := range sess.Form().Fields {
		if field.Type == forms.FieldTypeArray {
			continue
		}
		if _, present := r.PostForm[field.Name]; present {
			sess.SetValue(field.Name, r.PostForm.Get(field.Name))
		}
	}

	for name := range r.PostForm {
		rest, ok := strings.CutPrefix(name, "item.")
		if !ok {
			continue
		}
		idRaw, column, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil {
			continue
		}
		sess.SetItemField(id, column, r.PostForm.Get(name))
	}
	return true
}

// renderPage draws the shell for one session: tab navigation, the form with
// its current values and errors, and the preview when a submission stands.
func (s *server) renderPage(w http.ResponseWriter, r *http.Request, sess *session.Session, notice string) {
	ctx := r.Context()
	spec := sess.Spec()

	formHTML, err := s.renderer.RenderForm(ctx, sess.Form(), spec, sess.RenderOptions())
	if err != nil {
		s.logger.Error("render form", "error", err)
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}

	previewHTML := []byte(nil)
	if visual, ok := sess.Visual(); ok {
		previewHTML, err = s.renderer.RenderVisual(ctx, visual, render.Options{})
		if err != nil {
			s.logger.Error("render preview", "error", err)
			http.Error(w, "error interno", http.StatusInternalServerError)
			return
		}
	}

	tabs := make([]htmldoc.Tab, 0, len(acta.Specs()))
	for _, tabSpec := range acta.Specs() {
		tabs = append(tabs, htmldoc.Tab{
			Kind:   string(tabSpec.Kind),
			Label:  tabSpec.Title,
			Href:   "/actas/" + string(tabSpec.Kind),
			Active: tabSpec.Kind == spec.Kind,
		})
	}

	page, err := s.renderer.RenderShell(ctx, htmldoc.ShellData{
		Title:       s.cfg.Title,
		Heading:     s.cfg.Title,
		Tabs:        tabs,
		Kind:        spec.Kind,
		FormHTML:    string(formHTML),
		PreviewHTML: string(previewHTML),
		Notice:      notice,
		AssetsPath:  "/assets",
	})
	if err != nil {
		s.logger.Error("render shell", "error", err)
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	if _, err := w.Write(page); err != nil {
		s.logger.Error("write page", "error", err)
	}
}
