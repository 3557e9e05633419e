package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	theme "github.com/goliatone/go-theme"

	internalopenapi "github.com/modo-caracas/actagen/internal/openapi"
	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/export"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/render"
	"github.com/modo-caracas/actagen/pkg/renderers/htmldoc"
	"github.com/modo-caracas/actagen/pkg/session"
)

const defaultRendererName = "htmldoc"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDocument injects a pre-loaded OpenAPI document, bypassing the embedded
// default.
func WithDocument(doc *openapi3.T) Option {
	return func(o *Orchestrator) {
		o.doc = doc
	}
}

// WithForm overrides the lowered form definition for one kind.
func WithForm(kind acta.Kind, form forms.Form) Option {
	return func(o *Orchestrator) {
		if o.formOverrides == nil {
			o.formOverrides = make(map[acta.Kind]forms.Form)
		}
		o.formOverrides[kind] = form
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when callers omit an
// explicit renderer name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithExporter injects the exporter used for document downloads.
func WithExporter(exporter export.Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

// WithThemeConfig forwards a go-theme renderer config to the default HTML
// renderer. Ignored when a registry is injected.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.themeConfig = cfg
	}
}

// WithLogoMarkup forwards institution logo markup to the default HTML
// renderer. Ignored when a registry is injected.
func WithLogoMarkup(markup string) Option {
	return func(o *Orchestrator) {
		o.logoMarkup = markup
	}
}

// Orchestrator wires the embedded OpenAPI document, the lowered form
// definitions, the renderer registry, and the exporter into one entry point.
// It applies sensible defaults (embedded document, htmldoc renderer, PDF
// exporter) while remaining open to dependency injection.
type Orchestrator struct {
	doc             *openapi3.T
	forms           map[acta.Kind]forms.Form
	formOverrides   map[acta.Kind]forms.Form
	registry        *render.Registry
	defaultRenderer string
	exporter        export.Exporter
	themeConfig     *theme.RendererConfig
	logoMarkup      string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Form returns the lowered form definition for one kind.
func (o *Orchestrator) Form(kind acta.Kind) (forms.Form, error) {
	if err := o.ready(); err != nil {
		return forms.Form{}, err
	}
	form, ok := o.forms[kind]
	if !ok {
		return forms.Form{}, fmt.Errorf("orchestrator: no form for kind %q", kind)
	}
	return form, nil
}

// Session starts a fresh editing session for one kind.
func (o *Orchestrator) Session(kind acta.Kind) (*session.Session, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	spec, err := acta.SpecFor(kind)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	form, err := o.Form(kind)
	if err != nil {
		return nil, err
	}
	return session.New(spec, form), nil
}

// Renderer resolves a renderer by name, falling back to the configured
// default when the name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

// Exporter returns the configured document exporter.
func (o *Orchestrator) Exporter() (export.Exporter, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if o.exporter == nil {
		return nil, errors.New("orchestrator: no exporter configured")
	}
	return o.exporter, nil
}

// Export validates the session's preconditions and produces the downloadable
// file through the configured exporter.
func (o *Orchestrator) Export(ctx context.Context, sess *session.Session) (export.File, error) {
	if ctx == nil {
		return export.File{}, errors.New("orchestrator: context is required")
	}
	exporter, err := o.Exporter()
	if err != nil {
		return export.File{}, err
	}
	return sess.Export(ctx, exporter)
}

func (o *Orchestrator) ready() error {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.doc == nil {
		doc, err := internalopenapi.LoadEmbedded(context.Background())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load embedded document: %w", err)
			return
		}
		o.doc = doc
	}

	o.forms = make(map[acta.Kind]forms.Form, len(acta.Specs()))
	for _, spec := range acta.Specs() {
		if override, ok := o.formOverrides[spec.Kind]; ok {
			o.forms[spec.Kind] = override
			continue
		}
		form, err := internalopenapi.FormForOperation(o.doc, spec.OperationID)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: lower form for %q: %w", spec.Kind, err)
			return
		}
		o.forms[spec.Kind] = form
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		opts := []htmldoc.Option{}
		if o.themeConfig != nil {
			opts = append(opts, htmldoc.WithThemeConfig(o.themeConfig))
		}
		if o.logoMarkup != "" {
			opts = append(opts, htmldoc.WithLogoMarkup(o.logoMarkup))
		}
		renderer, err := htmldoc.New(opts...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.exporter == nil {
		o.exporter = export.NewPDF()
	}
}
