// Package web embeds the HTML templates rendered by the page handlers.
package web

import (
	"embed"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"number": FormatNumber,
}

// Templates parses every page template. Page names are the file names, e.g. "index.html".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// FormatNumber groups digits the way the stats header shows them.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
