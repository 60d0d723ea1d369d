package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"

	"restaurantmap/internal/finder"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	Title       string
	Interactive bool
	View        finder.View
	Notices     []finder.Notice
	MapJSON     template.JS
}

// PageOptions controls the parts of the page that differ between the live UI
// and an exported snapshot.
type PageOptions struct {
	// Interactive adds the location form and cuisine selector.
	Interactive bool
	// Notices are shown above the map in addition to the view's own.
	Notices []finder.Notice
}

// Page writes a self-contained HTML document for v.
func Page(w io.Writer, v finder.View, opts PageOptions) error {
	mapJSON, err := json.Marshal(NewMap(v))
	if err != nil {
		return err
	}
	notices := append(append([]finder.Notice{}, opts.Notices...), v.Notices...)
	return pageTemplate.Execute(w, pageData{
		Title:       "Nearby Restaurants Map with Cuisine Filter",
		Interactive: opts.Interactive,
		View:        v,
		Notices:     notices,
		MapJSON:     template.JS(mapJSON),
	})
}

// PageBytes renders a non-interactive snapshot of v.
func PageBytes(v finder.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := Page(&buf, v, PageOptions{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
