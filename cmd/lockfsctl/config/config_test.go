package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	def := Default()
	assert.Equal(t, 1024, def.InodeTableSize)
	assert.Equal(t, "rwlock", def.SyncStrategy)
	assert.Equal(t, "-", def.InputFile)
}

func TestBindFlagsAndLoadUsesDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()

	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestBindFlagsAndLoadHonorsOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := viper.New()

	require.NoError(t, BindFlags(fs, v))
	require.NoError(t, fs.Parse([]string{"--workers", "16", "--sync-strategy", "mutex"}))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, "mutex", cfg.SyncStrategy)
}
