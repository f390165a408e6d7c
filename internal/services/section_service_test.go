package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
	"gorm.io/datatypes"
)

func TestSectionService_AddAppendsAndValidates(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	svc := NewSectionService("skills", e.portfolios, e.sections.Skills, e.cache, e.v)

	a, err := svc.Add(ctx, "u1", p.ID, &models.Skill{Name: "Go", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)
	b, err := svc.Add(ctx, "u1", p.ID, &models.Skill{Name: "SQL", Keywords: datatypes.JSONSlice[string]{"postgres"}})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 1, b.Position)
	assert.Equal(t, p.ID, b.PortfolioID)

	_, err = svc.Add(ctx, "u1", p.ID, &models.Skill{Level: "guru"})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "level")

	_, err = svc.Add(ctx, "u2", p.ID, &models.Skill{Name: "Rust"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSectionService_UpdateKeepsPositionAndVisibility(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	svc := NewSectionService("experience", e.portfolios, e.sections.Experience, e.cache, e.v)

	_, err := svc.Add(ctx, "u1", p.ID, &models.Experience{Company: "A", Role: "Dev", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)
	item, err := svc.Add(ctx, "u1", p.ID, &models.Experience{Company: "B", Role: "Dev", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)

	up, err := svc.Update(ctx, "u1", p.ID, item.ID, &models.Experience{
		Company:    "B Corp",
		Role:       "Lead",
		Highlights: datatypes.JSONSlice[string]{"shipped v2"},
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, up.ID)
	assert.Equal(t, 1, up.Position)
	assert.True(t, up.Visible)

	stored, err := e.sections.Experience.Get(ctx, p.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "B Corp", stored.Company)
	assert.Equal(t, []string{"shipped v2"}, []string(stored.Highlights))

	_, err = svc.Update(ctx, "u1", p.ID, "missing", &models.Experience{Company: "x", Role: "y"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSectionService_ToggleAndRemove(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	other := e.newPortfolio(t, "u2", "bob")
	svc := NewSectionService("profiles", e.portfolios, e.sections.Profiles, e.cache, e.v)

	item, err := svc.Add(ctx, "u1", p.ID, &models.Profile{Network: "GitHub", URL: "https://github.com/jane", SectionItem: models.SectionItem{Visible: true}})
	require.NoError(t, err)

	toggled, err := svc.ToggleVisibility(ctx, "u1", p.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Visible)

	toggled, err = svc.ToggleVisibility(ctx, "u1", p.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Visible)

	// an item addressed through someone else's portfolio does not exist
	_, err = svc.ToggleVisibility(ctx, "u2", other.ID, item.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	require.NoError(t, svc.Remove(ctx, "u1", p.ID, item.ID))
	assert.True(t, utils.IsCode(svc.Remove(ctx, "u1", p.ID, item.ID), utils.CodeNotFound))
}

func TestSectionService_Reorder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	svc := NewSectionService("projects", e.portfolios, e.sections.Projects, e.cache, e.v)

	var ids []string
	for _, name := range []string{"one", "two", "three"} {
		it, err := svc.Add(ctx, "u1", p.ID, &models.Project{Name: name})
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}

	out, err := svc.Reorder(ctx, "u1", p.ID, []string{ids[2], ids[0], ids[1]})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"three", "one", "two"}, []string{out[0].Name, out[1].Name, out[2].Name})
	assert.Equal(t, 0, out[0].Position)
	assert.Equal(t, 2, out[2].Position)

	for _, bad := range [][]string{
		{ids[0], ids[1]},
		{ids[0], ids[1], ids[1]},
		{ids[0], ids[1], "foreign"},
		{ids[0], ids[1], ids[2], "extra"},
	} {
		_, err := svc.Reorder(ctx, "u1", p.ID, bad)
		assert.Contains(t, fieldsOf(t, err), "ids")
	}
}
