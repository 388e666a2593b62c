package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// notesRenderer turns plan notes into HTML. Raw HTML in notes is dropped.
type notesRenderer struct {
	md goldmark.Markdown
}

func newNotesRenderer() *notesRenderer {
	return &notesRenderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)}
}

func (r *notesRenderer) render(notes string) template.HTML {
	if notes == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(notes), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(notes))
	}
	return template.HTML(buf.String())
}
