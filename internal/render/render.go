package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/bassista/go_folio/internal/content"
	"github.com/bassista/go_folio/internal/dashboard"
	"github.com/bassista/go_folio/internal/locale"
	"github.com/bassista/go_folio/internal/theme"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// PageTemplate is the name of the full page template.
const PageTemplate = "page.html"

// Titles rotate under the hero name.
var Titles = []string{
	"Backend Architect",
	"Microservices Engineer",
	"Cloud Native Builder",
	"Full Stack Developer",
}

// PageData is everything the page template needs for one request.
type PageData struct {
	Title         string
	Description   string
	Theme         theme.Theme
	Resume        *content.Resume
	Person        content.PersonSchema
	Locale        locale.Display
	Board         dashboard.Board
	Heights       []float64
	Titles        []string
	ReducedMotion bool
	Year          int
}

// NewPageData fills the derived fields from r.
func NewPageData(r *content.Resume, t theme.Theme, display locale.Display, board dashboard.Board, heights []float64) PageData {
	return PageData{
		Title:       fmt.Sprintf("%s | %s", titleCase(r.Name), r.Role),
		Description: r.Tagline,
		Theme:       t,
		Resume:      r,
		Person:      content.Person(r),
		Locale:      display,
		Board:       board,
		Heights:     heights,
		Titles:      Titles,
		Year:        time.Now().Year(),
	}
}

// Renderer owns the parsed templates and the markdown converter.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown":   r.Inline,
		"jsonld":     jsonLD,
		"barOpacity": barOpacity,
		"initials":   initials,
		"telHref":    telHref,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Template exposes the template set, e.g. for gin's SetHTMLTemplate.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page writes the full page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, data)
}

// Inline renders a single line of markdown without the paragraph wrapper.
// Raw HTML in the source is escaped.
func (r *Renderer) Inline(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}

// Assets returns the embedded static files rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

func jsonLD(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func barOpacity(h float64) string {
	return fmt.Sprintf("%.2f", 0.5+(h/100)*0.5)
}

func initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(f))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func telHref(phone string) template.URL {
	var b strings.Builder
	for _, c := range phone {
		if c == '+' || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return template.URL("tel:" + b.String())
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
