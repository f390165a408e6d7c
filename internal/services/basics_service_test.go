package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

type scriptedLLM struct {
	chunks []string
	err    error
	prompt string
}

func (s *scriptedLLM) StreamAnswer(_ context.Context, prompt string) (<-chan string, <-chan error) {
	s.prompt = prompt
	out := make(chan string, len(s.chunks))
	errs := make(chan error, 1)
	for _, c := range s.chunks {
		out <- c
	}
	close(out)
	if s.err != nil {
		errs <- s.err
	}
	close(errs)
	return out, errs
}

func (*scriptedLLM) Close() error { return nil }

func TestBasicsService_Upsert(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	svc := NewBasicsService(e.portfolios, e.sections, nil, e.cache, e.v)

	b, err := svc.Get(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.True(t, b.Visible, "empty basics default to visible")

	b, err = svc.Upsert(ctx, "u1", p.ID, BasicsInput{Name: "Jane", Headline: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", b.Name)

	off := false
	b, err = svc.Upsert(ctx, "u1", p.ID, BasicsInput{Name: "Jane D", Visible: &off})
	require.NoError(t, err)
	assert.False(t, b.Visible)

	got, err := svc.Get(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane D", got.Name)
	assert.False(t, got.Visible)

	_, err = svc.Upsert(ctx, "u1", p.ID, BasicsInput{Email: "not-an-email"})
	assert.Contains(t, fieldsOf(t, err), "email")

	_, err = svc.Get(ctx, "u2", p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestBasicsService_SuggestSummary(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")

	_, err := NewBasicsService(e.portfolios, e.sections, nil, e.cache, e.v).SuggestSummary(ctx, "u1", p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))

	gen := &scriptedLLM{chunks: []string{" I build ", "reliable backends."}}
	svc := NewBasicsService(e.portfolios, e.sections, gen, e.cache, e.v)

	_, err = svc.SuggestSummary(ctx, "u1", p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "nothing to summarize yet")

	_, err = svc.Upsert(ctx, "u1", p.ID, BasicsInput{Name: "Jane", Headline: "Backend engineer"})
	require.NoError(t, err)
	skills := NewSectionService("skills", e.portfolios, e.sections.Skills, e.cache, e.v)
	_, err = skills.Add(ctx, "u1", p.ID, &models.Skill{Name: "Go"})
	require.NoError(t, err)

	out, err := svc.SuggestSummary(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "I build reliable backends.", out)
	assert.True(t, strings.Contains(gen.prompt, "Backend engineer"))
	assert.True(t, strings.Contains(gen.prompt, "Go"))

	gen.err = errors.New("quota")
	_, err = svc.SuggestSummary(ctx, "u1", p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}
