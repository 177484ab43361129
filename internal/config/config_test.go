package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "state_machine", cfg.Tag)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, "dot", cfg.Format)
	assert.True(t, cfg.Legend)
	assert.Equal(t, 3, cfg.GridThreshold)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestMergeFileYAML(t *testing.T) {
	path := writeFile(t, "fsm.yaml", `
tag: fsm
out_dir: diagrams
legend: false
grid_threshold: "5"
`)

	cfg := Default()
	require.NoError(t, cfg.MergeFile(path, true))

	assert.Equal(t, "fsm", cfg.Tag)
	assert.Equal(t, "diagrams", cfg.OutDir)
	assert.False(t, cfg.Legend)
	assert.Equal(t, 5, cfg.GridThreshold)
	assert.Equal(t, "dot", cfg.Format, "keys absent from the file keep their value")
}

func TestMergeFileJSON(t *testing.T) {
	path := writeFile(t, "fsm.json", `{"format": "svg", "debug": true}`)

	cfg := Default()
	require.NoError(t, cfg.MergeFile(path, true))

	assert.Equal(t, "svg", cfg.Format)
	assert.True(t, cfg.Debug)
}

func TestMergeFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg := Default()
	assert.NoError(t, cfg.MergeFile(missing, false))
	assert.Equal(t, Default(), cfg)

	err := cfg.MergeFile(missing, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMergeFileRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "fsm.yaml", "tagg: fsm\n")

	cfg := Default()
	err := cfg.MergeFile(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tagg")
}

func TestMergeFileMalformed(t *testing.T) {
	path := writeFile(t, "fsm.yaml", "tag: [unclosed\n")

	cfg := Default()
	assert.Error(t, cfg.MergeFile(path, true))
}

func TestMergeEnv(t *testing.T) {
	cfg := Default()
	err := cfg.MergeEnv([]string{
		"HOME=/root",
		"FSMGRAPH_FORMAT=mermaid",
		"FSMGRAPH_GRID_THRESHOLD=7",
		"FSMGRAPH_LEGEND=false",
		"FSMGRAPH_DEBUG=1",
	})
	require.NoError(t, err)

	assert.Equal(t, "mermaid", cfg.Format)
	assert.Equal(t, 7, cfg.GridThreshold)
	assert.False(t, cfg.Legend)
	assert.True(t, cfg.Debug)
}

func TestMergeEnvInvalid(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.MergeEnv([]string{"FSMGRAPH_GRID_THRESHOLD=many"}))
	assert.Error(t, cfg.MergeEnv([]string{"FSMGRAPH_COLOUR=red"}))
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "fsm.yaml", "format: svg\nout_dir: from-file\n")
	t.Setenv("FSMGRAPH_FORMAT", "png")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "png", cfg.Format, "env overrides the file")
	assert.Equal(t, "from-file", cfg.OutDir, "file overrides defaults")
	assert.Equal(t, "state_machine", cfg.Tag)
}

func TestLoadDefaultFileIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("tag: machine\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "machine", cfg.Tag)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty tag", func(c *Config) { c.Tag = "" }, "tag must not be empty"},
		{"zero threshold", func(c *Config) { c.GridThreshold = 0 }, "grid_threshold"},
		{"unknown format", func(c *Config) { c.Format = "pdf" }, "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	cfg.Format = "pdf"
	assert.True(t, errors.Is(cfg.Validate(), domain.ErrUnsupportedFormat))
}
