package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"gorm.io/datatypes"
)

func testSite() *models.Site {
	pub := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return &models.Site{
		Portfolio: models.PublicPortfolio{Name: "jane", Subdomain: "jane", Template: models.TemplateDeveloper},
		Basics:    &models.Basics{Name: "Jane Doe", Headline: "Backend engineer", Email: "jane@example.com", Visible: true},
		Skills: []models.Skill{
			{Name: "Go", Level: "expert", Keywords: datatypes.JSONSlice[string]{"gin", "gorm"}},
		},
		Projects: []models.Project{{Name: "folio", URL: "https://folio.dev"}},
		Posts:    []models.Blog{{Slug: "hello-world", Title: "Hello World", PublishedAt: &pub}},
	}
}

func TestRender_Templates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range models.Templates {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, SitePage(testSite(), "")))
			out := buf.String()
			assert.Contains(t, out, "Jane Doe")
			assert.Contains(t, out, "gin, gorm")
			assert.Contains(t, out, `href="/blog/hello-world"`)
			assert.Contains(t, out, "March 14, 2025")
		})
	}
}

func TestRender_UnknownFallsBackToClassic(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var classic, unknown bytes.Buffer
	require.NoError(t, r.Render(&classic, models.TemplateClassic, SitePage(testSite(), "")))
	require.NoError(t, r.Render(&unknown, "neon-pink", SitePage(testSite(), "")))
	assert.Equal(t, classic.String(), unknown.String())

	var partial bytes.Buffer
	require.NoError(t, r.Render(&partial, "head", SitePage(testSite(), "")))
	assert.Equal(t, classic.String(), partial.String())
}

func TestRender_EscapesUserContent(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	site := testSite()
	site.Basics.Summary = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, models.TemplateClassic, SitePage(site, "")))
	assert.NotContains(t, buf.String(), `<script>alert`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRender_BasePath(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageBlogIndex, SitePage(testSite(), "/_sites/jane")))
	assert.Contains(t, buf.String(), `href="/_sites/jane/blog/hello-world"`)
}

func TestMarkdown_Sanitised(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Markdown("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestRender_NotFound(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageNotFound, &PageData{}))
	assert.Contains(t, buf.String(), "This site does not exist.")
}
