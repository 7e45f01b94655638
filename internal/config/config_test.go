package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/signup/internal/adapters/signupapi"
	"github.com/vncsmyrnk/signup/internal/adapters/view"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SIGNUP_ADDR", "SIGNUP_API_URL", "SIGNUP_API_TIMEOUT",
		"SIGNUP_GEOSEARCH_URL", "SIGNUP_ACCEPTED_STATE", "SIGNUP_CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, signupapi.DefaultEndpoint, cfg.APIURL)
	assert.Equal(t, "http://lsp-signup.anandology.com/signup_api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Empty(t, cfg.Fields)
	assert.Empty(t, cfg.Page.GeosearchURL)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNUP_ADDR", ":9000")
	t.Setenv("SIGNUP_API_URL", "http://env.example/signup_api")
	t.Setenv("SIGNUP_API_TIMEOUT", "5s")
	t.Setenv("SIGNUP_ACCEPTED_STATE", "TS")

	cfg, err := Load([]string{"-api-url", "http://flag.example/signup_api"})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "http://flag.example/signup_api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, "TS", cfg.Page.AcceptedState)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNUP_API_TIMEOUT", "soon")

	_, err := Load(nil)
	assert.Error(t, err)

	t.Setenv("SIGNUP_API_TIMEOUT", "")
	_, err = Load([]string{"-api-timeout", "-1s"})
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "signup.yaml")
	content := `
fields:
  - name: name
    label: Full name
    placeholder: As on your voter ID
  - name: address
    label: Locality
    help: Pick from the list.
page:
  heading: Volunteer with us
  geosearch_url: https://geo.example
  accepted_state: AP
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load([]string{"-config", path, "-geosearch-url", "https://override.example"})
	require.NoError(t, err)

	require.Len(t, cfg.Fields, 2)
	assert.Equal(t, "Full name", cfg.Fields[0].Label)
	assert.Equal(t, "Pick from the list.", cfg.Fields[1].Help)
	assert.Equal(t, "Volunteer with us", cfg.Page.Heading)
	assert.Equal(t, "https://override.example", cfg.Page.GeosearchURL)
	assert.Equal(t, "AP", cfg.Page.AcceptedState)

	r, err := view.New(cfg.ViewOptions()...)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Form(&buf, nil, nil))
	doc := buf.String()
	for _, name := range []string{"name", "phone", "email", "voterid", "address", "ward"} {
		assert.Contains(t, doc, `id="`+name+`"`, "fixed input %s must survive a partial field list", name)
	}
	assert.Contains(t, doc, ">Full name</label>")
	assert.Contains(t, doc, ">Phone Number</label>")
	assert.Contains(t, doc, "Pick from the list.")
}

func TestLoad_YAMLUnknownFieldRejectedByRenderer(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "signup.yaml")
	content := `
fields:
  - name: nickname
    label: Nickname
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	_, err = view.New(cfg.ViewOptions()...)
	assert.Error(t, err)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNUP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestReadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: [\n"), 0o600))

	_, err := ReadFile(path)
	assert.Error(t, err)
}
