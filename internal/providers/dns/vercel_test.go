package dns

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVercel(t *testing.T, h http.HandlerFunc) *Vercel {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	v := NewVercel("tok", "prj_1", "team_1")
	v.BaseURL = srv.URL
	return v
}

func TestVercel_GetDomain(t *testing.T) {
	v := newTestVercel(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "team_1", r.URL.Query().Get("teamId"))
		assert.Equal(t, "/v9/projects/prj_1/domains/jane.dev", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":     "jane.dev",
			"apexName": "jane.dev",
			"verified": false,
			"verification": []map[string]string{
				{"type": "TXT", "domain": "_vercel.jane.dev", "value": "vc-domain-verify=abc"},
			},
		})
	})

	d, err := v.GetDomain(context.Background(), "jane.dev")
	require.NoError(t, err)
	assert.False(t, d.Verified)
	require.Len(t, d.Verification, 1)
	assert.Equal(t, "TXT", d.Verification[0].Type)
}

func TestVercel_ErrorMapping(t *testing.T) {
	v := newTestVercel(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v9/projects/prj_1/domains/missing.dev":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"nope"}}`))
		case "/v10/projects/prj_1/domains":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":"domain_already_in_use","message":"taken"}}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"forbidden","message":"bad token"}}`))
		}
	})
	ctx := context.Background()

	_, err := v.GetDomain(ctx, "missing.dev")
	assert.ErrorIs(t, err, ErrDomainNotFound)

	_, err = v.AddDomain(ctx, "taken.dev")
	assert.ErrorIs(t, err, ErrDomainTaken)

	_, err = v.GetConfig(ctx, "x.dev")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "forbidden", apiErr.Code)
}

func TestVercel_AddAndConfig(t *testing.T) {
	v := newTestVercel(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v10/projects/prj_1/domains":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane.dev", body["name"])
			_, _ = w.Write([]byte(`{"name":"jane.dev","verified":true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v6/domains/jane.dev/config":
			_, _ = w.Write([]byte(`{"misconfigured":true}`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	d, err := v.AddDomain(ctx, "jane.dev")
	require.NoError(t, err)
	assert.True(t, d.Verified)

	cfg, err := v.GetConfig(ctx, "jane.dev")
	require.NoError(t, err)
	assert.True(t, cfg.Misconfigured)

	assert.NoError(t, v.RemoveDomain(ctx, "jane.dev"))
}
