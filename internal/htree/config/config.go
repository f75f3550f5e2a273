// Package config resolves htree settings from flags, HTREE_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	OptionNameConfig         = "config"
	OptionNameThreads        = "threads"
	OptionNameBlockSize      = "block-size"
	OptionNameCoverRemainder = "cover-remainder"
	OptionNameMaxTasks       = "max-tasks"
	OptionNameWorkers        = "workers"
	OptionNameVerbose        = "verbose"
	OptionNameMetrics        = "metrics"

	envPrefix  = "htree"
	configName = ".htree"
)

// Config holds every tunable of the htree commands.
type Config struct {
	Threads        int
	BlockSize      int64
	CoverRemainder bool
	MaxTasks       int
	Workers        int
	Verbose        bool
	Metrics        bool
}

// AddFlags registers the shared flags on fs with their defaults.
func AddFlags(fs *pflag.FlagSet) {
	fs.Int(OptionNameThreads, runtime.NumCPU(), "number of hash tree tasks per file")
	fs.Int64(OptionNameBlockSize, 4096, "block size in bytes used to split the file between tasks")
	fs.Bool(OptionNameCoverRemainder, false, "hash the bytes left over by the block split in the last task")
	fs.Int(OptionNameMaxTasks, 0, "maximum number of live tasks (0 means one per thread)")
	fs.Int(OptionNameWorkers, runtime.NumCPU(), "number of files fingerprinted at once by walk")
	fs.BoolP(OptionNameVerbose, "v", false, "log debug output to stderr")
	fs.Bool(OptionNameMetrics, false, "print engine metrics to stderr when done")
}

// Load builds a Config. cfgFile names a YAML file; when empty, .htree.yaml
// in the home directory is used if it exists.
func Load(fs *pflag.FlagSet, cfgFile string) (Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return Config{}, fmt.Errorf("read config %s: %w", filepath.Clean(v.ConfigFileUsed()), err)
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	c := Config{
		Threads:        v.GetInt(OptionNameThreads),
		BlockSize:      v.GetInt64(OptionNameBlockSize),
		CoverRemainder: v.GetBool(OptionNameCoverRemainder),
		MaxTasks:       v.GetInt(OptionNameMaxTasks),
		Workers:        v.GetInt(OptionNameWorkers),
		Verbose:        v.GetBool(OptionNameVerbose),
		Metrics:        v.GetBool(OptionNameMetrics),
	}
	return c, c.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Threads <= 0 {
		return fmt.Errorf("%s must be positive, got %d", OptionNameThreads, c.Threads)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", OptionNameBlockSize, c.BlockSize)
	}
	if c.MaxTasks < 0 {
		return fmt.Errorf("%s must not be negative, got %d", OptionNameMaxTasks, c.MaxTasks)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%s must be positive, got %d", OptionNameWorkers, c.Workers)
	}
	return nil
}
