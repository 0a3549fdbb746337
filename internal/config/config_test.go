package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlConfig = `workers: 2
history: .regionsync.db
jobs:
  - kind: headers
    source: kstate.c
    target: kstate.h
  - kind: headers
    source: src/simple.c
  - kind: tests
    source: check_kstate.c
    suite: tc_limits
    indent: "\t"
`

const cueConfig = `workers: 2
history: ".regionsync.db"
jobs: [
	{kind: "headers", source: "kstate.c", target: "kstate.h"},
	{kind: "headers", source: "src/simple.c"},
	{kind: "tests", source: "check_kstate.c", suite: "tc_limits", indent: "\t"},
]
`

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "regionsync.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.BackupEnabled())
	assert.Equal(t, filepath.Join(dir, ".regionsync.db"), cfg.History)
	require.Len(t, cfg.Jobs, 3)

	assert.Equal(t, Job{Kind: KindHeaders, Source: filepath.Join(dir, "kstate.c"), Target: filepath.Join(dir, "kstate.h")}, cfg.Jobs[0])
	assert.Equal(t, filepath.Join(dir, "src", "simple_fns.h"), cfg.Jobs[1].Target)

	tests := cfg.Jobs[2]
	assert.Equal(t, KindTests, tests.Kind)
	assert.Equal(t, tests.Source, tests.Target)
	assert.Equal(t, "tc_limits", tests.Suite)
	require.NotNil(t, tests.Indent)
	assert.Equal(t, "\t", *tests.Indent)
}

func TestLoad_CUEMatchesYAML(t *testing.T) {
	dir := t.TempDir()
	fromYAML, err := Load(writeConfig(t, dir, "regionsync.yaml", yamlConfig))
	require.NoError(t, err)

	fromCUE, err := Load(writeConfig(t, dir, "regionsync.cue", cueConfig))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromCUE)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "c.yml", "jobs:\n  - kind: tests\n    source: /abs/check.c\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Workers)
	assert.True(t, cfg.BackupEnabled())
	assert.Empty(t, cfg.History)
	assert.Equal(t, "/abs/check.c", cfg.Jobs[0].Source)
	assert.Equal(t, "/abs/check.c", cfg.Jobs[0].Target)
	assert.Nil(t, cfg.Jobs[0].Indent)
}

func TestLoad_BackupDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "c.yaml", "backup: false\njobs:\n  - {kind: tests, source: a.c}\n"))
	require.NoError(t, err)
	assert.False(t, cfg.BackupEnabled())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown yaml field", "c.yaml", "jobz: []\n", "jobz"},
		{"no jobs", "c.yaml", "workers: 1\n", "no jobs"},
		{"bad kind", "c.yaml", "jobs:\n  - {kind: docs, source: a.c}\n", `got "docs"`},
		{"missing source", "c.yaml", "jobs:\n  - {kind: tests}\n", "source is required"},
		{"negative workers", "c.yaml", "workers: -1\njobs:\n  - {kind: tests, source: a.c}\n", "workers"},
		{"cue bad kind", "c.cue", `jobs: [{kind: "docs", source: "a.c"}]`, "kind"},
		{"cue unknown field", "c.cue", `jobs: [{kind: "tests", source: "a.c", colour: "red"}]`, "colour"},
		{"cue syntax", "c.cue", `jobs: [`, "c.cue"},
		{"unsupported extension", "c.toml", "jobs = []\n", "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := Load(writeConfig(t, dir, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	_, err := Find(dir)
	assert.ErrorIs(t, err, ErrNotFound)

	writeConfig(t, dir, "regionsync.cue", cueConfig)
	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "regionsync.cue"), path)

	// YAML wins when both exist.
	writeConfig(t, dir, "regionsync.yaml", yamlConfig)
	path, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "regionsync.yaml"), path)
}

func TestDefaultHeaderTarget(t *testing.T) {
	assert.Equal(t, "kstate_fns.h", DefaultHeaderTarget("kstate.c"))
	assert.Equal(t, filepath.Join("src", "x_fns.h"), DefaultHeaderTarget(filepath.Join("src", "x.c")))
}
