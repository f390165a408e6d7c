package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContact(t *testing.T) {
	m, err := buildContact("noreply@folio.dev", ContactMessage{
		To:          "jane@example.com",
		SiteName:    "jane",
		SenderName:  "Bob",
		SenderEmail: "bob@example.com",
		Body:        "Hi <script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"noreply@folio.dev"}, m.GetHeader("From"))
	assert.Equal(t, []string{"jane@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"[jane] New message from Bob"}, m.GetHeader("Subject"))
	require.Len(t, m.GetHeader("Reply-To"), 1)
	assert.Contains(t, m.GetHeader("Reply-To")[0], "bob@example.com")

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script></p>")
}

func TestDisabledSender(t *testing.T) {
	err := Disabled{}.SendContact(context.Background(), ContactMessage{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
