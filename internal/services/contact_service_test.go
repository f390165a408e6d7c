package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/utils"
)

func TestContactService_DeliversToSiteOwner(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	publish(t, e, "u1", p)
	_, err := NewBasicsService(e.portfolios, e.sections, nil, e.cache, e.v).
		Upsert(ctx, "u1", p.ID, BasicsInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	sender := &fakeSender{}
	svc := NewContactService(e.sites, e.cache, sender, 2, e.v)
	in := ContactInput{Site: "Jane", Name: " Bob ", Email: "bob@example.com", Message: "Hi there"}

	require.NoError(t, svc.Send(ctx, "10.0.0.1", in))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, "Bob", sender.sent[0].SenderName)
	assert.Equal(t, "jane", sender.sent[0].SiteName)

	require.NoError(t, svc.Send(ctx, "10.0.0.1", in))
	err = svc.Send(ctx, "10.0.0.1", in)
	assert.True(t, utils.IsCode(err, utils.CodeLimitExceeded))
	assert.Len(t, sender.sent, 2)

	// other clients keep their own budget
	assert.NoError(t, svc.Send(ctx, "10.0.0.2", in))
}

func TestContactService_Rejections(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	p := e.newPortfolio(t, "u1", "jane")
	publish(t, e, "u1", p)

	svc := NewContactService(e.sites, e.cache, &fakeSender{}, 5, e.v)

	err := svc.Send(ctx, "ip", ContactInput{Site: "jane", Name: "Bob", Email: "nope", Message: "hi"})
	assert.Contains(t, fieldsOf(t, err), "email")

	err = svc.Send(ctx, "ip", ContactInput{Site: "jane", Name: "Bob", Email: "bob@example.com", Message: "hi"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "no contact email on the site")

	err = svc.Send(ctx, "ip", ContactInput{Site: "ghost", Name: "Bob", Email: "bob@example.com", Message: "hi"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
