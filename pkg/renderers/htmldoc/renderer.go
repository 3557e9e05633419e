// Package htmldoc renders acta forms and visual documents as HTML through
// pongo2 templates. It is the default renderer registered by the
// orchestrator; the same templates back the interactive preview and the
// print view.
package htmldoc

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/render"
	rendertemplate "github.com/modo-caracas/actagen/pkg/render/template"
	gotemplate "github.com/modo-caracas/actagen/pkg/render/template/gotemplate"
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	themeConfig      *theme.RendererConfig
	logoMarkup       string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeConfig resolves chrome classes from a go-theme renderer config.
func WithThemeConfig(themeConfig *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.themeConfig = themeConfig
	}
}

// WithLogoMarkup supplies institution logo markup. It is sanitized before
// use; markup that sanitizes to nothing is dropped.
func WithLogoMarkup(raw string) Option {
	return func(cfg *config) {
		cfg.logoMarkup = sanitizeLogoMarkup(raw)
	}
}

// Renderer implements render.Renderer over the embedded templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	chrome    ChromeClasses
	logo      string
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("htmldoc: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{
		templates: engine,
		chrome:    chromeFromTheme(cfg.themeConfig),
		logo:      cfg.logoMarkup,
	}, nil
}

func (r *Renderer) Name() string { return "htmldoc" }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// fieldView is the flattened header-field state the form template consumes.
type fieldView struct {
	Name        string
	Label       string
	Placeholder string
	InputType   string
	Min         string
	Value       string
	Errors      []string
}

// itemView is one line-item row with its per-column errors.
type itemView struct {
	ID                int64
	SerialNumber      string
	Description       string
	Quantity          string
	SerialErrors      []string
	DescriptionErrors []string
	QuantityErrors    []string
}

type itemLabels struct {
	Section      string
	SerialNumber string
	Description  string
	Quantity     string
}

// RenderForm draws the editable form for one kind with current values and
// inline errors.
func (r *Renderer) RenderForm(ctx context.Context, form forms.Form, spec acta.Spec, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == forms.FieldTypeArray {
			continue
		}
		fields = append(fields, fieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			InputType:   inputType(field),
			Min:         minParam(field),
			Value:       opts.Values[field.Name],
			Errors:      opts.Errors[field.Name],
		})
	}

	items := make([]itemView, 0, len(opts.Items))
	for i, row := range opts.Items {
		items = append(items, itemView{
			ID:                row.ID,
			SerialNumber:      row.SerialNumber,
			Description:       row.Description,
			Quantity:          row.Quantity,
			SerialErrors:      opts.Errors[forms.ItemPath(i, "serialNumber")],
			DescriptionErrors: opts.Errors[forms.ItemPath(i, "description")],
			QuantityErrors:    opts.Errors[forms.ItemPath(i, "quantity")],
		})
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"kind":        string(spec.Kind),
		"title":       form.Title,
		"fields":      fields,
		"items":       items,
		"itemLabels":  itemLabelsFor(form),
		"itemsErrors": opts.Errors["items"],
		"previewing":  opts.Previewing,
		"canRemove":   len(opts.Items) > 1,
		"chrome":      r.chrome,
	})
	if err != nil {
		return nil, fmt.Errorf("htmldoc: render form: %w", err)
	}
	return []byte(result), nil
}

// RenderVisual draws a visual document: a preview fragment by default, a
// self-contained print page when opts.Print is set. Both kinds pin the same
// per-kind page margins in the print variant.
func (r *Renderer) RenderVisual(ctx context.Context, visual render.VisualDocument, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec, err := acta.SpecFor(visual.Kind)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: render visual: %w", err)
	}

	logo := visual.LogoMarkup
	if logo == "" {
		logo = r.logo
	} else {
		logo = sanitizeLogoMarkup(logo)
	}

	result, err := r.templates.RenderTemplate("templates/acta.tmpl", map[string]any{
		"visual":  visual,
		"logo":    logo,
		"print":   opts.Print,
		"margins": cssMargins(spec.Page),
		"chrome":  r.chrome,
	})
	if err != nil {
		return nil, fmt.Errorf("htmldoc: render visual: %w", err)
	}
	return []byte(result), nil
}

// Tab is one entry of the shell's kind switcher.
type Tab struct {
	Kind   string
	Label  string
	Href   string
	Active bool
}

// ShellData feeds RenderShell with everything the page shell shows.
type ShellData struct {
	Title       string
	Heading     string
	Tabs        []Tab
	Kind        acta.Kind
	FormHTML    string
	PreviewHTML string
	Notice      string
	AssetsPath  string
}

// RenderShell draws the full tab-navigation page hosting one kind's form
// and, when present, its preview with the export and print actions.
func (r *Renderer) RenderShell(ctx context.Context, data ShellData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate("templates/shell.tmpl", map[string]any{
		"title":      data.Title,
		"heading":    data.Heading,
		"tabs":       data.Tabs,
		"kind":       string(data.Kind),
		"formHTML":   data.FormHTML,
		"preview":    data.PreviewHTML,
		"notice":     data.Notice,
		"assetsPath": data.AssetsPath,
		"chrome":     r.chrome,
	})
	if err != nil {
		return nil, fmt.Errorf("htmldoc: render shell: %w", err)
	}
	return []byte(result), nil
}

func inputType(field forms.Field) string {
	switch field.Type {
	case forms.FieldTypeDate:
		return "date"
	case forms.FieldTypeInteger:
		return "number"
	default:
		return "text"
	}
}

func minParam(field forms.Field) string {
	if field.Type == forms.FieldTypeDate {
		if rule, ok := field.Rule(forms.RuleMinDate); ok {
			return rule.Params["value"]
		}
	}
	if field.Type == forms.FieldTypeInteger {
		if rule, ok := field.Rule(forms.RuleMin); ok {
			return rule.Params["value"]
		}
	}
	return ""
}

func itemLabelsFor(form forms.Form) itemLabels {
	labels := itemLabels{
		Section:      "Equipos",
		SerialNumber: "Serie o Referencia",
		Description:  "Descripción",
		Quantity:     "Cantidad",
	}
	itemsField, ok := form.Field("items")
	if ok && itemsField.Label != "" {
		labels.Section = itemsField.Label
	}
	for _, field := range form.ItemFields() {
		if field.Label == "" {
			continue
		}
		switch field.Name {
		case "serialNumber":
			labels.SerialNumber = field.Label
		case "description":
			labels.Description = field.Label
		case "quantity":
			labels.Quantity = field.Label
		}
	}
	return labels
}

func cssMargins(page acta.Page) string {
	m := page.MarginsMM
	return fmt.Sprintf("%gmm %gmm %gmm %gmm", m[0], m[1], m[2], m[3])
}
