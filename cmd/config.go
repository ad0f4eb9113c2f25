package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// applyConfig sets every flag named in the YAML file at path unless it was given on the command line.
// Keys are flag names, e.g. "dist: euclidean" or "k: 3".
func applyConfig(fs *pflag.FlagSet, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for name, v := range values {
		fl := fs.Lookup(name)
		if fl == nil {
			return fmt.Errorf("config %s: unknown flag %q", path, name)
		}
		if fl.Changed || name == "config" {
			continue
		}
		if err := fs.Set(name, configValue(v)); err != nil {
			return fmt.Errorf("config %s: flag %q: %w", path, name, err)
		}
		slog.Debug("Applied config", slog.String("flag", name), slog.Any("value", v))
	}
	return nil
}

func configValue(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
