package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"openai", "anthropic"}, cfg.LLM.Providers)
	assert.Equal(t, []string{"thursday", "friday"}, cfg.Quiet.RestDays)
	assert.Equal(t, 9, cfg.Quiet.StartHour)
	assert.Equal(t, 18, cfg.Quiet.EndHour)
	assert.Equal(t, 4, cfg.Quiet.CooldownHours)
	assert.Equal(t, "Asia/Riyadh", cfg.Quiet.Timezone)
	assert.Empty(t, cfg.Storage.Path, "empty path selects the platform default")
	assert.Equal(t, 200, cfg.Agents.CoachMaxTokens)
	assert.Equal(t, 1000, cfg.Agents.PlannerMaxTokens)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverlaysFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
quiet:
  rest_days: [saturday, sunday]
  cooldown_hours: 2
storage:
  path: /tmp/other.db
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"saturday", "sunday"}, cfg.Quiet.RestDays)
	assert.Equal(t, 2, cfg.Quiet.CooldownHours)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.Path)
	// Untouched sections keep their defaults.
	assert.Equal(t, 9, cfg.Quiet.StartHour)
	assert.Equal(t, []string{"openai", "anthropic"}, cfg.LLM.Providers)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "quiet: [not a map")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestQuietPolicy_Defaults(t *testing.T) {
	policy := DefaultConfig().QuietPolicy()

	assert.Equal(t, []time.Weekday{time.Thursday, time.Friday}, policy.RestDays)
	assert.Equal(t, 9, policy.StartHour)
	assert.Equal(t, 18, policy.EndHour)
	assert.Equal(t, 4*time.Hour, policy.Cooldown)
	require.NotNil(t, policy.Location)
	assert.Equal(t, "Asia/Riyadh", policy.Location.String())
}

func TestQuietPolicy_CustomDays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet.RestDays = []string{"Saturday", "SUNDAY"}

	policy := cfg.QuietPolicy()

	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, policy.RestDays, "day names are case-insensitive")
}

func TestQuietPolicy_UnknownDaysKeepDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet.RestDays = []string{"caturday"}

	policy := cfg.QuietPolicy()

	assert.Equal(t, []time.Weekday{time.Thursday, time.Friday}, policy.RestDays)
}

func TestQuietPolicy_BadTimezoneKeepsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quiet.Timezone = "Mars/Olympus_Mons"

	policy := cfg.QuietPolicy()

	assert.NotNil(t, policy.Location)
}

func TestManager_CurrentAndReload(t *testing.T) {
	path := writeConfig(t, "quiet:\n  cooldown_hours: 2\n")

	mgr, err := NewManager(path, nil)
	require.NoError(t, err)
	defer mgr.Close()

	assert.Equal(t, 2, mgr.Current().Quiet.CooldownHours)

	require.NoError(t, os.WriteFile(path, []byte("quiet:\n  cooldown_hours: 6\n"), 0o644))
	mgr.reload()

	assert.Equal(t, 6, mgr.Current().Quiet.CooldownHours)
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	path := writeConfig(t, "quiet:\n  cooldown_hours: 2\n")

	mgr, err := NewManager(path, nil)
	require.NoError(t, err)
	defer mgr.Close()

	require.NoError(t, os.WriteFile(path, []byte("quiet: [broken"), 0o644))
	mgr.reload()

	assert.Equal(t, 2, mgr.Current().Quiet.CooldownHours, "a bad file never replaces a good config")
}

func TestManager_OnChangeNotified(t *testing.T) {
	path := writeConfig(t, "quiet:\n  cooldown_hours: 2\n")

	mgr, err := NewManager(path, nil)
	require.NoError(t, err)
	defer mgr.Close()

	var seen *Config
	mgr.OnChange(func(cfg *Config) { seen = cfg })

	require.NoError(t, os.WriteFile(path, []byte("quiet:\n  cooldown_hours: 6\n"), 0o644))
	mgr.reload()

	require.NotNil(t, seen)
	assert.Equal(t, 6, seen.Quiet.CooldownHours)
}
