package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/app"
	"coopdesk/internal/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestNew_Precedence(t *testing.T) {
	home := t.TempDir()
	file := config.Default()
	file.APIURL = "http://file.test"
	file.Tenant = "from-file"
	file.Currency = "USD"
	require.NoError(t, config.Save(home, file))

	var out bytes.Buffer
	a, err := app.New(app.Options{
		Home:   home,
		Stdout: &out,
		Getenv: env(map[string]string{config.EnvTenant: "from-env", config.EnvAPIURL: "http://env.test"}),
		Override: func(c *config.Config) {
			c.APIURL = "http://flag.test"
		},
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "http://flag.test", a.Settings.APIURL)
	assert.Equal(t, "from-env", a.Settings.Tenant)
	assert.Equal(t, "USD", a.Settings.Currency)
	assert.Equal(t, "from-env", a.API.Tenant())
	assert.NotNil(t, a.Auth)
	assert.NotNil(t, a.Portal)
	assert.NotNil(t, a.Admin)
	assert.NotNil(t, a.Platform)
	assert.False(t, a.Out.JSONMode())
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := app.New(app.Options{
		Home:     t.TempDir(),
		Getenv:   env(nil),
		Override: func(c *config.Config) { c.APIURL = "not a url" },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNew_CreatesHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "coopdesk")
	a, err := app.New(app.Options{Home: home, Getenv: env(nil), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	defer a.Close()

	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
