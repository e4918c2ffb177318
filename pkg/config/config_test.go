package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, types.ModeFIFO, cfg.SchedulingMode)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheduler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cpusPerTask: 2
schedulingMode: FAIR
speculationEnabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.CPUsPerTask)
	assert.Equal(t, types.ModeFAIR, cfg.SchedulingMode)
	assert.True(t, cfg.SpeculationEnabled)
	// Fields the file didn't set keep their Default() values.
	assert.Equal(t, 100, cfg.SpeculationIntervalMS)
	assert.Equal(t, 15000, cfg.StarvationTimeoutMS)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cpusPerTask: [this is not an int"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid default", mutate: func(c *Config) {}, wantErr: false},
		{name: "unknown scheduling mode", mutate: func(c *Config) { c.SchedulingMode = "BOGUS" }, wantErr: true},
		{name: "non-positive cpusPerTask", mutate: func(c *Config) { c.CPUsPerTask = 0 }, wantErr: true},
		{name: "non-positive maxTaskFailures", mutate: func(c *Config) { c.MaxTaskFailures = -1 }, wantErr: true},
		{name: "non-positive speculationIntervalMs", mutate: func(c *Config) { c.SpeculationIntervalMS = 0 }, wantErr: true},
		{name: "non-positive starvationTimeoutMs", mutate: func(c *Config) { c.StarvationTimeoutMS = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				var cerr *ConfigurationError
				assert.ErrorAs(t, err, &cerr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
