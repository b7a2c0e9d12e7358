package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "widgetreplace.toml", `
slots = ["json"]
log_level = "debug"
pretty = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Config{Slots: []string{"json"}, LogLevel: "debug", Pretty: true}, cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "widgetreplace.yml", `
slots:
  - question
  - hints
pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"question", "hints"}, cfg.Slots)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their default")
	assert.True(t, cfg.Pretty)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load("settings.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadFromReader(strings.NewReader(""), Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseErrors(t *testing.T) {
	path := writeFile(t, "bad.toml", "slots = [\"json\"\nlog_level = ")

	_, err := Load(path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Positive(t, perr.Line)
	assert.Contains(t, err.Error(), "parse error in "+path)

	_, err = LoadFromReader(strings.NewReader("slots: [unclosed"), FormatYAML)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "<reader>", perr.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{name: "Default", cfg: Default(), ok: true},
		{name: "NoSlots", cfg: Config{LogLevel: "info"}},
		{name: "BlankSlot", cfg: Config{Slots: []string{"json", " "}, LogLevel: "info"}},
		{name: "BadLevel", cfg: Config{Slots: []string{"json"}, LogLevel: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader(`slots = []`), FormatTOML)
	assert.ErrorContains(t, err, "no slots configured")
}
