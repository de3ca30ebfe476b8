package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/domain/model"
)

func TestLoad_UsesBuiltInDefaultsWhenNothingElseSet(t *testing.T) {
	c := Load(nil, nil)
	assert.Equal(t, defaultDBPath, c.DBPath())
	assert.Equal(t, model.ClockTime{Hour: defaultWorkHoursStartHour}, c.WorkHoursStart())
	assert.Equal(t, "default", c.ConfigSource())
}

func TestLoad_DefaultsFileOverridesBuiltIns(t *testing.T) {
	defaults := &DefaultsFile{DBPath: "/var/lib/chronotask.db", DefaultCurveType: "exponential"}
	c := Load(nil, defaults)
	assert.Equal(t, "/var/lib/chronotask.db", c.DBPath())
	assert.Equal(t, "exponential", c.DefaultCurveType())
	assert.Equal(t, "defaults_file", c.ConfigSource())
}

func TestLoad_StoreConfigOverridesDefaultsFile(t *testing.T) {
	defaults := &DefaultsFile{DBPath: "/from/file.db"}
	store := map[string]string{"db_path": "/from/store.db"}
	c := Load(store, defaults)
	assert.Equal(t, "/from/store.db", c.DBPath())
	assert.Equal(t, "store", c.ConfigSource())
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	t.Setenv(EnvDBPath, "/from/env.db")
	defaults := &DefaultsFile{DBPath: "/from/file.db"}
	store := map[string]string{"db_path": "/from/store.db"}
	c := Load(store, defaults)
	assert.Equal(t, "/from/env.db", c.DBPath())
	assert.Equal(t, "env", c.ConfigSource())
}

func TestLoadDefaultsFile_MissingPathReturnsEmpty(t *testing.T) {
	d, err := LoadDefaultsFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &DefaultsFile{}, d)
}

func TestLoadDefaultsFile_EmptyPathReturnsEmpty(t *testing.T) {
	d, err := LoadDefaultsFile("")
	require.NoError(t, err)
	assert.Equal(t, &DefaultsFile{}, d)
}

func TestLoadDefaultsFile_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	content := "db_path: /custom/path.db\nwork_hours_start: \"08:00\"\ncurve_type: hard_window\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := LoadDefaultsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/custom/path.db", d.DBPath)
	assert.Equal(t, "08:00", d.WorkHoursStart)
	assert.Equal(t, "hard_window", d.DefaultCurveType)
}
