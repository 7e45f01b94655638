package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/vncsmyrnk/signup/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	fields []Field
	page   Page
}

// WithFields overlays metadata onto the fixed fields, matched by Name. Empty
// members keep their defaults; the set and order of inputs never change.
func WithFields(fields []Field) Option {
	return func(cfg *config) {
		if len(fields) == 0 {
			return
		}
		cfg.fields = append([]Field(nil), fields...)
	}
}

// WithPage overrides the page copy; empty members keep their defaults.
func WithPage(page Page) Option {
	return func(cfg *config) {
		cfg.page = mergePage(page)
	}
}

type fieldMeta struct {
	Field
	help        template.HTML
	helpPending template.HTML
}

// Renderer turns an error map and previous values into the signup page.
// It holds only immutable state and is safe for concurrent use.
type Renderer struct {
	tmpl   *template.Template
	fields []fieldMeta
	known  map[string]struct{}
	page   Page
}

func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		page: DefaultPage(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	policy := helpPolicy()
	r := &Renderer{
		tmpl:  tmpl,
		known: make(map[string]struct{}),
		page:  cfg.page,
	}
	fields, err := overlayFields(DefaultFields(), cfg.fields)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		r.known[f.Name] = struct{}{}
		r.fields = append(r.fields, fieldMeta{
			Field:       f,
			help:        sanitizeHelp(policy, f.Help),
			helpPending: sanitizeHelp(policy, f.HelpPending),
		})
	}

	return r, nil
}

type fieldView struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Error       string
	HasError    bool
	Help        template.HTML
	HelpPending template.HTML
}

type formView struct {
	Page
	Banners []string
	Fields  []fieldView
	Ward    string
}

// Form writes the signup form annotated with errs and pre-filled from values.
func (r *Renderer) Form(w io.Writer, errs domain.ErrorMap, values domain.SubmittedFields) error {
	data := formView{
		Page:    r.page,
		Banners: r.banners(errs),
		Ward:    values.Get(domain.FieldWard),
	}
	for _, f := range r.fields {
		msg, has := errs[f.Name]
		data.Fields = append(data.Fields, fieldView{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Value:       values.Get(f.Name),
			Error:       msg,
			HasError:    has,
			Help:        f.help,
			HelpPending: f.helpPending,
		})
	}
	return r.execute(w, "form", data)
}

// ThankYou writes the terminal success view.
func (r *Renderer) ThankYou(w io.Writer) error {
	return r.execute(w, "thankyou", r.page)
}

// banners collects the form-level message followed by messages for keys that
// have no visible input, so none of them is dropped.
func (r *Renderer) banners(errs domain.ErrorMap) []string {
	var out []string
	if msg, ok := errs.FormError(); ok {
		out = append(out, msg)
	}
	for _, k := range errs.Fields() {
		if _, ok := r.known[k]; !ok {
			out = append(out, errs[k])
		}
	}
	return out
}

// execute renders into a buffer first so a template failure never leaves a
// half-written page on the wire.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
