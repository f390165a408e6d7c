package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

type portfolioInput struct {
	Name      string `json:"name" validate:"required,max=10"`
	Subdomain string `json:"subdomain" validate:"required,hostname_label"`
	Template  string `json:"template" validate:"template_name"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ae *utils.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, utils.CodeInvalidArgument, ae.Code)
	return ae.Fields
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct("Op", portfolioInput{Name: "Main", Subdomain: "jane-doe", Template: "minimal"})
	assert.NoError(t, err)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct("Op", portfolioInput{Name: "", Subdomain: "-bad", Template: "fancy"})

	fields := fieldsOf(t, err)
	assert.Equal(t, "This field is required", fields["name"])
	assert.Contains(t, fields["subdomain"], "lowercase")
	assert.Contains(t, fields["template"], "classic")
}

func TestSectionRules(t *testing.T) {
	v := New()

	exp := models.Experience{Company: "Acme", Role: "Engineer", URL: "not a url"}
	fields := fieldsOf(t, v.Struct("Op", exp))
	assert.Equal(t, "Must be a valid URL", fields["url"])

	skill := models.Skill{Name: "Go", Level: "guru"}
	fields = fieldsOf(t, v.Struct("Op", skill))
	assert.Contains(t, fields["level"], "beginner, intermediate")

	profile := models.Profile{Network: "GitHub", URL: "https://github.com/jane"}
	assert.NoError(t, v.Struct("Op", profile))
}

func TestIsLabel(t *testing.T) {
	assert.True(t, IsLabel("abc"))
	assert.True(t, IsLabel("jane-doe-42"))
	assert.False(t, IsLabel("ab"))
	assert.False(t, IsLabel("Jane"))
	assert.False(t, IsLabel("jane-"))
	assert.False(t, IsLabel("jane.doe"))
}

func TestIsHostname(t *testing.T) {
	for _, ok := range []string{"janedoe.com", "www.jane-doe.dev", "a.io", "blog.x1.co.uk"} {
		assert.True(t, IsHostname(ok), ok)
	}
	for _, bad := range []string{"", "localhost", "-jane.com", "jane-.com", "jane..com", "jane.123", "jane_doe.com", "Jane.com"} {
		assert.False(t, IsHostname(bad), bad)
	}
}
