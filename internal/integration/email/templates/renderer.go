// Package templates renders report emails from embedded HTML and plain-text pairs.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// executor is satisfied by both html/template and text/template.
type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// Renderer holds every embedded template. Each name must exist as both
// name.html and name.txt.
type Renderer struct {
	html executor
	text executor
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render returns the HTML and plain-text bodies for name.
func (r *Renderer) Render(name string, data any) (string, string, error) {
	html, err := execute(r.html, name+".html", data)
	if err != nil {
		return "", "", err
	}
	text, err := execute(r.text, name+".txt", data)
	if err != nil {
		return "", "", err
	}
	return html, text, nil
}

func execute(set executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", file, err)
	}
	return buf.String(), nil
}

// ReportLine is a label/value row in a report table.
type ReportLine struct {
	Label string
	Value string
}

// WellnessReportData feeds wellness_report.html and wellness_report.txt.
type WellnessReportData struct {
	UserName     string
	Score        int
	DTILabel     string
	FocusMessage string
	Highlights   []ReportLine
	Components   []ReportLine
	DashboardURL string
}
