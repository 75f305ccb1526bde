// Package view renders the directory's HTML pages with html/template.
// Every page is parsed together with the shared layout and exposed to echo
// as "<dir>/<name>.html", for example "pages/venues.html".
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/service"
)

//go:embed templates
var templatesFS embed.FS

const layoutGlob = "templates/layouts/*.html"

// Page is the value every template receives.
type Page struct {
	Title   string
	Flashes []string
	Data    any
}

// VenueFormData backs the venue create and edit forms.  ID is zero on
// create.
type VenueFormData struct {
	ID     uint64
	Form   form.VenueForm
	Errors form.Errors
}

// ArtistFormData backs the artist create and edit forms.
type ArtistFormData struct {
	ID     uint64
	Form   form.ArtistForm
	Errors form.Errors
}

// ShowFormData backs the show form.
type ShowFormData struct {
	Form form.ShowForm
}

// SearchData backs both search result pages.
type SearchData struct {
	Term    string
	Results service.SearchResult
}

// ErrorData backs the generic error page.
type ErrorData struct {
	Code    int
	Message string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout and every page.
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(templatesFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			t, err := template.New(path.Base(f)).Funcs(Funcs()).ParseFS(templatesFS, layoutGlob, f)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", f, err)
			}
			r.pages[dir+"/"+path.Base(f)] = t
		}
	}
	return r, nil
}

// Render executes the named page into a buffer first, so a template
// failure never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page is registered under name.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":    FormatDateTime,
		"contains":    contains,
		"join":        strings.Join,
		"states":      func() []string { return model.States },
		"genres":      genreNames,
		"fieldErrors": form.Errors.For,
	}
}

// FormatDateTime renders a show time.  "full" reads like
// "Monday May, 21, 2035 at 9:30PM"; anything else gives the medium form
// "Mon 05, 21, 2035 9:30PM".
func FormatDateTime(t time.Time, format string) string {
	if format == "full" {
		return t.Format("Monday January, 2, 2006 at 3:04PM")
	}
	return t.Format("Mon 01, 02, 2006 3:04PM")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func genreNames() []string {
	out := make([]string, 0, len(model.Genres))
	for _, g := range model.Genres {
		out = append(out, string(g))
	}
	return out
}
