package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAPIPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api", true},
		{"/api/", true},
		{"/api/v1/session", true},
		{"/apartment", false},
		{"/apiary/index.html", false},
		{"/", false},
		{"/static/app.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isAPIPath(tt.path))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_API_MODE", "")
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "text-davinci-003", cfg.OpenAI.Model)

	path := filepath.Join(t.TempDir(), "listinggen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai:\n  model: gpt-3.5-turbo-instruct\n"), 0o600))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.OpenAI.Model)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
