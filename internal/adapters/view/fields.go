package view

import (
	"fmt"
	"strings"

	"github.com/vncsmyrnk/signup/internal/core/domain"
)

// Field is the static metadata of one visible input. Help and HelpPending may
// carry limited inline markup; both are sanitized before rendering.
type Field struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	Help        string `yaml:"help,omitempty"`
	HelpPending string `yaml:"help_pending,omitempty"`
}

// Page holds the surrounding copy and client-side lookup settings.
type Page struct {
	Title         string   `yaml:"title"`
	Heading       string   `yaml:"heading"`
	Intro         string   `yaml:"intro"`
	SubmitLabel   string   `yaml:"submit_label"`
	ThankYouTitle string   `yaml:"thank_you_title"`
	ThankYouLines []string `yaml:"thank_you_lines"`
	StateName     string   `yaml:"state_name"`
	AcceptedState string   `yaml:"accepted_state"`
	GeosearchURL  string   `yaml:"geosearch_url"`
}

func DefaultFields() []Field {
	return []Field{
		{Name: domain.FieldName, Label: "Name", Placeholder: "Enter your name"},
		{Name: domain.FieldPhone, Label: "Phone Number", Placeholder: "Enter your phone number"},
		{Name: domain.FieldEmail, Label: "E-mail Address", Placeholder: "Enter your e-mail address"},
		{Name: domain.FieldVoterID, Label: "Voter ID", Placeholder: "Enter your voter ID"},
		{
			Name:        domain.FieldAddress,
			Label:       "Locality",
			Placeholder: "Select your locality",
			Help:        "Please pick a locality from the dropdown so that we can identify your assembly constituency automatically.",
			HelpPending: `<i class="fa fa-spinner fa-spin"></i> Please wait while we discover your assembly constituency from the location.`,
		},
	}
}

func DefaultPage() Page {
	return Page{
		Title:         "Booth Agent Registration",
		Heading:       "Booth Agent Registration",
		Intro:         "Sign up a polling booth agent for Loksatta.",
		SubmitLabel:   "Sign Up",
		ThankYouTitle: "Thank You!",
		ThankYouLines: []string{
			"Thank you for stepping up to volunteer for Loksatta.",
			"We'll get in touch with you shortly.",
		},
		StateName:     "Andhra Pradesh",
		AcceptedState: "AP",
		GeosearchURL:  "https://geosearch-anandology.rhcloud.com",
	}
}

// overlayFields applies overrides onto base by name. Unknown or repeated
// names are rejected so every fixed input keeps its place in the form.
func overlayFields(base, overrides []Field) ([]Field, error) {
	index := make(map[string]int, len(base))
	for i, f := range base {
		index[f.Name] = i
	}

	out := append([]Field(nil), base...)
	seen := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			return nil, fmt.Errorf("field without a name (label %q)", o.Label)
		}
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}

		f := &out[i]
		if o.Label != "" {
			f.Label = o.Label
		}
		if o.Placeholder != "" {
			f.Placeholder = o.Placeholder
		}
		if o.Help != "" {
			f.Help = o.Help
		}
		if o.HelpPending != "" {
			f.HelpPending = o.HelpPending
		}
	}
	return out, nil
}

// mergePage fills empty members of p from the defaults.
func mergePage(p Page) Page {
	d := DefaultPage()
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.Heading == "" {
		p.Heading = d.Heading
	}
	if p.Intro == "" {
		p.Intro = d.Intro
	}
	if p.SubmitLabel == "" {
		p.SubmitLabel = d.SubmitLabel
	}
	if p.ThankYouTitle == "" {
		p.ThankYouTitle = d.ThankYouTitle
	}
	if len(p.ThankYouLines) == 0 {
		p.ThankYouLines = d.ThankYouLines
	}
	if p.StateName == "" {
		p.StateName = d.StateName
	}
	if p.AcceptedState == "" {
		p.AcceptedState = d.AcceptedState
	}
	if p.GeosearchURL == "" {
		p.GeosearchURL = d.GeosearchURL
	}
	return p
}
