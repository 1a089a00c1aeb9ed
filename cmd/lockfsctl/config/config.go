// Package config loads lockfsctl's runtime configuration from flags,
// environment variables and an optional config file, the way gcsfuse's
// cmd package binds cobra flags through viper into a single struct.
package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable lockfsctl exposes, split between the
// tree's own sizing knobs and the daemon's ambient concerns.
type Config struct {
	// InodeTableSize is the node table's fixed capacity.
	InodeTableSize int `mapstructure:"inode-table-size"`
	// MaxDirEntries is the per-directory entry array capacity.
	MaxDirEntries int `mapstructure:"max-dir-entries"`
	// MaxFileName bounds a single path component's length.
	MaxFileName int `mapstructure:"max-file-name"`
	// Workers is the size of the goroutine pool dispatch fans commands
	// out across.
	Workers int `mapstructure:"workers"`
	// SyncStrategy picks the outer locking strategy syncwrap.Wrap uses:
	// "none", "mutex", or "rwlock".
	SyncStrategy string `mapstructure:"sync-strategy"`
	// InputFile is the command script to execute; "-" means stdin.
	InputFile string `mapstructure:"input-file"`
	// OutputFile receives one status line per command; "-" means stdout.
	OutputFile string `mapstructure:"output-file"`
	// LogFile is the rotating log destination; empty disables file logging.
	LogFile string `mapstructure:"log-file"`
}

// Default returns the configuration lockfsctl runs with when no flags,
// environment variables or config file override anything.
func Default() Config {
	return Config{
		InodeTableSize: 1024,
		MaxDirEntries:  64,
		MaxFileName:    255,
		Workers:        4,
		SyncStrategy:   "rwlock",
		InputFile:      "-",
		OutputFile:     "-",
	}
}

// BindFlags registers every Config field as a flag on fs and
// binds it into v, so precedence ends up flag > env > config file >
// default, the same chain cfg.BindFlags establishes upstream.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	def := Default()

	fs.Int("inode-table-size", def.InodeTableSize, "fixed capacity of the node table")
	fs.Int("max-dir-entries", def.MaxDirEntries, "fixed capacity of each directory's entry array")
	fs.Int("max-file-name", def.MaxFileName, "maximum length of a single path component")
	fs.Int("workers", def.Workers, "number of goroutines dispatch fans commands out across")
	fs.String("sync-strategy", def.SyncStrategy, "outer locking strategy: none, mutex, or rwlock")
	fs.String("input-file", def.InputFile, "command script to execute (- for stdin)")
	fs.String("output-file", def.OutputFile, "where to write one status line per command (- for stdout)")
	fs.String("log-file", def.LogFile, "rotating log file destination (empty disables file logging)")

	if err := v.BindPFlags(fs); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	return nil
}

// ReadFile loads path into v as a yaml config file, the way gcsfuse's
// initConfig loads the file named by --config-file before Unmarshal.
// An empty path is a no-op: flags and environment remain the only
// sources.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "reading config file")
	}
	return nil
}

// Load resolves the final Config from v, which the caller has already
// populated from flags, environment and/or a config file via
// ReadFile/viper.ReadInConfig.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	decoderOpt := func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = false
	}
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()), decoderOpt); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}
