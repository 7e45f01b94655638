package view

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// helpPolicy permits the small set of inline tags used by help text, such as
// font-awesome spinners.
func helpPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "em", "small", "br", "span")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("i", "span")
	p.AllowElements("i")
	return p
}

func sanitizeHelp(p *bluemonday.Policy, s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return template.HTML(p.Sanitize(s))
}
