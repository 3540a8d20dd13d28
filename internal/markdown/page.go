package markdown

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed templates/page.html.tmpl
var pageTemplate string

//go:embed templates/styles.css
var pageStyles string

//go:embed templates/live_reload.js
var liveReloadScript string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// PageData is everything the page shell template needs.
type PageData struct {
	Title        string
	Description  string
	CanonicalURL string
	Language     string
	Body         template.HTML
	Styles       template.CSS
	LiveReload   template.JS
}

// RenderPage wraps a processed HTML body in the standalone page shell. When
// liveReload is set the embedded reload script is included, which subscribes
// to the preview server's event stream.
func RenderPage(meta PageMeta, body []byte, canonicalURL string, liveReload bool) ([]byte, error) {
	data := PageData{
		Title:        meta.Title,
		Description:  meta.Description,
		CanonicalURL: canonicalURL,
		Language:     "en",
		Body:         template.HTML(body),
		Styles:       template.CSS(pageStyles),
	}
	if liveReload {
		data.LiveReload = template.JS(liveReloadScript)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
