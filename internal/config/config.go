// Package config loads task definitions for jade2html.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jpequegn/jade2html/internal/models"
)

const (
	// DefaultFile is the config file looked up when none is given.
	DefaultFile = "jade2html.yaml"

	// EnvPrefix prefixes environment overrides, e.g. JADE2HTML__VERBOSE=true.
	// "__" separates nested keys.
	EnvPrefix = "JADE2HTML__"

	// DefaultTaskName is the built-in task.
	DefaultTaskName = "Jade2HTML"
	// DefaultSrc is the source glob of the built-in task.
	DefaultSrc = "Examples/Jade2HTML/templates/*.jade"
	// DefaultDest is the output directory of the built-in task.
	DefaultDest = "dist"
)

// Task is one transform: templates matching Src rendered into Dest.
type Task struct {
	Src     []string       `koanf:"src" yaml:"src"`
	Dest    []string       `koanf:"dest" yaml:"dest"`
	Options models.Options `koanf:"options" yaml:"options"`
}

// Config is the jade2html configuration.
type Config struct {
	DefaultTask string          `koanf:"default_task" yaml:"default_task"`
	Verbose     bool            `koanf:"verbose" yaml:"verbose"`
	Tasks       map[string]Task `koanf:"tasks" yaml:"tasks"`
}

// DefaultTask returns the built-in Jade2HTML task.
func DefaultTask() Task {
	return Task{
		Src:     []string{DefaultSrc},
		Dest:    []string{DefaultDest},
		Options: models.Options{"pretty": true},
	}
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		DefaultTask: DefaultTaskName,
		Tasks:       map[string]Task{DefaultTaskName: DefaultTask()},
	}
}

// delim separates nested keys inside koanf. It is not "." so that task
// names and option keys may contain dots.
const delim = "::"

// Load merges the YAML file at path (if present) with environment
// overrides (prefix JADE2HTML__, delimiter __).
// A missing file is not an error; an unreadable or malformed one is.
//
// Environment overrides of a task (JADE2HTML__TASKS__<NAME>__DEST=public)
// apply to the task whose name matches <NAME> case-insensitively. When the
// file defines no tasks, they apply to the built-in Jade2HTML task.
func Load(path string) (Config, error) {
	k := koanf.New(delim)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if len(k.MapKeys("tasks")) == 0 {
		if err := seedDefaultTask(k); err != nil {
			return Config{}, err
		}
	}

	envKey := envKeyFunc(k.MapKeys("tasks"))
	if err := k.Load(env.Provider(EnvPrefix, delim, envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// seedDefaultTask puts the built-in task into k so that environment
// overrides land on it.
func seedDefaultTask(k *koanf.Koanf) error {
	t := DefaultTask()
	prefix := "tasks" + delim + DefaultTaskName + delim
	values := map[string]any{
		prefix + "src":     t.Src,
		prefix + "dest":    t.Dest,
		prefix + "options": map[string]any(t.Options),
	}
	for key, val := range values {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}
	return nil
}

// envKeyFunc returns the koanf key mapper for environment variables:
// JADE2HTML__DEFAULT_TASK becomes default_task, and
// JADE2HTML__TASKS__JADE2HTML__DEST becomes tasks::Jade2HTML::dest when
// Jade2HTML is one of tasks.
func envKeyFunc(tasks []string) func(string) string {
	return func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		parts := strings.Split(strings.ToLower(s), "__")
		if len(parts) > 1 && parts[0] == "tasks" {
			for _, name := range tasks {
				if strings.EqualFold(name, parts[1]) {
					parts[1] = name
					break
				}
			}
		}
		return strings.Join(parts, delim)
	}
}

func applyDefaults(c *Config) {
	if len(c.Tasks) == 0 {
		c.Tasks = map[string]Task{DefaultTaskName: DefaultTask()}
	}
	if c.DefaultTask == "" {
		c.DefaultTask = DefaultTaskName
		// A single configured task is the default whatever its name.
		if _, ok := c.Tasks[DefaultTaskName]; !ok && len(c.Tasks) == 1 {
			for name := range c.Tasks {
				c.DefaultTask = name
			}
		}
	}
	for name, t := range c.Tasks {
		if t.Options == nil {
			t.Options = models.Options{}
		}
		c.Tasks[name] = t
	}
}
