package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[([a-z_]+)\](.*?)\[/([a-z_]+)\]`)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles.
// Unknown tags are left untouched.
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"info":    InfoStyle,
			"code":    CodeStyle,
			"path":    PathStyle,
			"muted":   MutedStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
		},
	}
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		changed := false
		result = tagPattern.ReplaceAllStringFunc(result, func(match string) string {
			sub := tagPattern.FindStringSubmatch(match)
			style, ok := p.styles[sub[1]]
			if !ok || sub[1] != sub[3] {
				return match
			}
			changed = true
			return style.Render(sub[2])
		})
		if !changed {
			return result
		}
	}
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

// RenderTemplate renders a template with variable substitution and markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
