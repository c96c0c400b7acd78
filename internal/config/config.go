// Package config loads optional defaults for the command line from a JSON
// file. Flags given explicitly always override the file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"deleter/pkg/bytesize"
)

type Config struct {
	Glob        string `json:"glob"`
	Exclude     string `json:"exclude"`
	MinSize     string `json:"min_size"`
	Parallelism int    `json:"parallelism"`
	Trash       *bool  `json:"trash"`
	Verbose     *bool  `json:"verbose"`
}

// ResolvePath returns the file to load. An explicit path is always used;
// otherwise the first existing default location wins.
func ResolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	for _, candidate := range DefaultPaths() {
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func DefaultPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "deleter", "config.json"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "deleter", "config.json"))
	}
	return paths
}

func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Normalize(cfg)
}

// Discover resolves and loads the config file. A missing default file is
// not an error and yields the zero Config.
func Discover(explicit string) (Config, error) {
	path, ok := ResolvePath(explicit)
	if !ok {
		return Config{}, nil
	}
	logrus.WithField("path", path).Debug("loading config")
	return Load(path)
}

func Normalize(cfg Config) (Config, error) {
	if cfg.Parallelism < 0 {
		return Config{}, errors.New("config: parallelism must be >= 0")
	}
	if cfg.MinSize != "" {
		if _, err := bytesize.Parse(cfg.MinSize); err != nil {
			return Config{}, fmt.Errorf("config: min_size: %w", err)
		}
	}
	return cfg, nil
}

// Apply copies every configured value into fs unless the flag was set on
// the command line. Flags that fs does not define are ignored.
func (c Config) Apply(fs *pflag.FlagSet) error {
	values := map[string]string{}
	if c.Glob != "" {
		values["glob"] = c.Glob
	}
	if c.Exclude != "" {
		values["exclude"] = c.Exclude
	}
	if c.MinSize != "" {
		values["min-size"] = c.MinSize
	}
	if c.Parallelism > 0 {
		values["parallelism"] = strconv.Itoa(c.Parallelism)
	}
	if c.Trash != nil {
		values["trash"] = strconv.FormatBool(*c.Trash)
	}
	if c.Verbose != nil {
		values["verbose"] = strconv.FormatBool(*c.Verbose)
	}

	for name, value := range values {
		flag := fs.Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
