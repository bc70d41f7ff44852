package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/clack/internal/config/loader"
)

// DefaultPath returns the preferences file location:
// $XDG_CONFIG_HOME/clack/config.toml, or the platform config directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "clack", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clack", "config.toml")
}

// LoadPreferences layers defaults, the TOML file at path and the
// environment (env may be nil). It always returns usable preferences; the
// error, when non-nil, lists every source or field that was ignored and
// should be logged as a warning.
func LoadPreferences(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Preferences, error) {
	prefs := Default()
	var errs []error

	overrides := make(map[string]any)
	if path != "" {
		file, err := loader.NewTOMLLoaderWithFS(fsys, path).Load()
		if err != nil {
			errs = append(errs, err)
		} else {
			overrides = loader.DeepMerge(overrides, file)
		}
	}
	if env != nil {
		vars, err := env.Load()
		if err != nil {
			errs = append(errs, err)
		} else {
			overrides = loader.DeepMerge(overrides, vars)
		}
	}

	errs = append(errs, apply(prefs, overrides, nil)...)
	errs = append(errs, prefs.Validate()...)
	return prefs, errors.Join(errs...)
}

// apply decodes every leaf of values into p on its own, so one value of
// the wrong type only costs that field. Unknown keys are ignored.
func apply(p *Preferences, values map[string]any, prefix []string) []error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		path := append(append([]string(nil), prefix...), k)
		v := values[k]
		if table, ok := v.(map[string]any); ok {
			errs = append(errs, apply(p, table, path)...)
			continue
		}
		if err := decodeField(p, path, v); err != nil {
			errs = append(errs, &FieldError{
				Path:  strings.Join(path, "."),
				Value: v,
				Err:   errors.Join(ErrTypeMismatch, err),
			})
		}
	}
	return errs
}

func decodeField(p *Preferences, path []string, v any) error {
	doc := map[string]any{path[len(path)-1]: v}
	for i := len(path) - 2; i >= 0; i-- {
		doc = map[string]any{path[i]: doc}
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, p)
}
