package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

func publish(t *testing.T, e *testEnv, userID string, p *models.Portfolio) {
	t.Helper()
	on := true
	_, err := e.folios.Update(context.Background(), userID, p.ID, UpdatePortfolioInput{Published: &on})
	require.NoError(t, err)
}

func TestSiteService_LookupUnknownAndUnpublished(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.sites.Lookup(ctx, "unknown-domain.com")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = e.sites.Lookup(ctx, "nobody")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	e.newPortfolio(t, "u1", "jane")
	_, err = e.sites.Lookup(ctx, "jane")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound), "drafts are not served")
}

func TestSiteService_FiltersHiddenContent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	publish(t, e, "u1", p)

	skills := NewSectionService("skills", e.portfolios, e.sections.Skills, e.cache, e.v)
	shown, err := skills.Add(ctx, "u1", p.ID, &models.Skill{Name: "Go", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)
	hidden, err := skills.Add(ctx, "u1", p.ID, &models.Skill{Name: "Cobol", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)
	_, err = skills.ToggleVisibility(ctx, "u1", p.ID, hidden.ID)
	require.NoError(t, err)

	_, err = e.blogs.Create(ctx, "u1", CreateBlogInput{PortfolioID: p.ID, Title: "Draft"})
	require.NoError(t, err)
	_, err = e.blogs.Create(ctx, "u1", CreateBlogInput{PortfolioID: p.ID, Title: "Live", Visible: true})
	require.NoError(t, err)

	basics := NewBasicsService(e.portfolios, e.sections, nil, e.cache, e.v)
	off := false
	_, err = basics.Upsert(ctx, "u1", p.ID, BasicsInput{Name: "Jane", Visible: &off})
	require.NoError(t, err)

	site, err := e.sites.Lookup(ctx, "JANE")
	require.NoError(t, err)
	assert.Nil(t, site.Basics)
	require.Len(t, site.Skills, 1)
	assert.Equal(t, shown.ID, site.Skills[0].ID)
	require.Len(t, site.Posts, 1)
	assert.Equal(t, "live", site.Posts[0].Slug)

	_, err = e.sites.Post(ctx, site, "draft")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	post, err := e.sites.Post(ctx, site, "live")
	require.NoError(t, err)
	assert.Equal(t, "Live", post.Title)
}

func TestSiteService_CacheAndCustomDomain(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.makePro(t, "u1")
	p := e.newPortfolio(t, "u1", "jane")
	publish(t, e, "u1", p)

	domains := newDomainService(e)
	_, err := domains.Add(ctx, "u1", p.ID, "janedoe.com")
	require.NoError(t, err)

	site, err := e.sites.Lookup(ctx, "janedoe.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, site.Portfolio.ID)
	assert.True(t, e.mr.Exists(cache.HostKey("janedoe.com")))
	assert.True(t, e.mr.Exists(cache.SiteKey(p.ID)))

	// served from cache once the row is gone from under it
	require.NoError(t, e.db.Exec("UPDATE portfolios SET published = ? WHERE id = ?", false, p.ID).Error)
	_, err = e.sites.Lookup(ctx, "janedoe.com")
	require.NoError(t, err)

	// a write through a service drops the cached copy
	skills := NewSectionService("skills", e.portfolios, e.sections.Skills, e.cache, e.v)
	_, err = skills.Add(ctx, "u1", p.ID, &models.Skill{Name: "Go"})
	require.NoError(t, err)
	_, err = e.sites.Lookup(ctx, "janedoe.com")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
