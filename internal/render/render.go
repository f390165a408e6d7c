// Package render turns site data into HTML pages using the templates embedded
// in the binary.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yoockh/folio/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageBlogIndex = "blog_index"
	PageBlogPost  = "blog_post"
	PageNotFound  = "not_found"
)

var pages = append(slices.Clone(models.Templates), PageBlogIndex, PageBlogPost, PageNotFound)

// PageData is what every page template receives.
type PageData struct {
	Title       string
	Description string
	// BasePath prefixes in-site links; empty when served from the tenant's own host.
	BasePath string
	Year     int

	Site     *models.Site
	Post     *models.Blog
	PostHTML template.HTML
	Message  string
}

type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"join": strings.Join,
		"date": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("January 2, 2006")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		tmpl: tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}, nil
}

// Render executes the named page into w. Unknown names use the classic template.
func (r *Renderer) Render(w io.Writer, name string, data *PageData) error {
	if !slices.Contains(pages, name) {
		name = models.TemplateClassic
	}
	if data.Year == 0 {
		data.Year = time.Now().UTC().Year()
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown converts a post body to sanitised HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// SitePage prepares the data of a portfolio's home page.
func SitePage(site *models.Site, basePath string) *PageData {
	d := &PageData{Site: site, BasePath: basePath}
	d.Title = site.Portfolio.Title
	if d.Title == "" {
		if site.Basics != nil && site.Basics.Name != "" {
			d.Title = site.Basics.Name
		} else {
			d.Title = site.Portfolio.Name
		}
	}
	d.Description = site.Portfolio.Description
	if d.Description == "" && site.Basics != nil {
		d.Description = site.Basics.Headline
	}
	return d
}
