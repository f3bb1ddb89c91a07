// Package config implements the per-repository configuration registry
// (limits, storage flags, tag/type enforcement). Effective configuration
// is always a deep merge of the built-in defaults with whatever JSON is on
// disk: missing groups and missing keys fall back to defaults, and keys
// the registry doesn't recognize are round-tripped verbatim so future
// versions of this module can add fields without breaking older stores.
//
// Configuration is a map-based deep merge rather than a flat struct
// load/save, since unrecognized keys written by a newer version of this
// module must round-trip unchanged through an older one, which a plain
// struct marshal can't provide.
package config

import (
	"encoding/json"
	"os"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// Config is the effective, fully-populated configuration for one
// repository: built-in defaults deep-merged with on-disk JSON.
type Config struct {
	raw map[string]any
}

// defaultsMap holds the built-in defaults merged under any on-disk
// configuration.
func defaultsMap() map[string]any {
	return map[string]any{
		"limits": map[string]any{
			"noteMaxLength":           10000,
			"maxTagsPerNote":          10,
			"maxAnchorsPerNote":       20,
			"tagDescriptionMaxLength": 2000,
		},
		"storage": map[string]any{
			"backupOnMigration":  true,
			"compressionEnabled": false,
		},
		"tags": map[string]any{
			"enforceAllowedTags": false,
		},
		"types": map[string]any{
			"enforceAllowedTypes": false,
		},
		"lint": map[string]any{
			"ignorePatterns":         []any{"node_modules/**", "vendor/**", "dist/**", "build/**"},
			"allowedMarkdownFolders": []any{"docs", "documentation", "doc"},
			"allowedRootFiles":       []any{"README.md", "LICENSE.md", "CHANGELOG.md", "CONTRIBUTING.md"},
			"exceptionDirectories":   []any{},
			"severityOverrides":      map[string]any{},
		},
	}
}

// Default returns a Config populated with nothing but built-in defaults.
func Default() *Config {
	return &Config{raw: defaultsMap()}
}

// Load reads configuration.json from the layout's data directory and
// deep-merges it over the defaults. A missing file is not an error — it
// is equivalent to an empty on-disk record.
func Load(layout *store.Layout) (*Config, error) {
	data, err := os.ReadFile(layout.ConfigPath())
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: layout.ConfigPath(), Cause: err}
	}

	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: layout.ConfigPath(), Cause: err}
	}

	return &Config{raw: deepMerge(defaultsMap(), onDisk)}, nil
}

// Save writes cfg atomically to configuration.json.
func Save(layout *store.Layout, cfg *Config) error {
	data, err := json.MarshalIndent(cfg.raw, "", "  ")
	if err != nil {
		return &errs.IoError{Category: errs.IoWrite, Path: layout.ConfigPath(), Cause: err}
	}
	return store.WriteAtomic(layout.ConfigPath(), data, 0644)
}

// Update merges a sparse delta record over the current effective
// configuration and persists the result. Any key present in delta
// (including a "version" key) replaces the current value at that path;
// anything delta omits is left untouched.
func Update(layout *store.Layout, delta map[string]any) (*Config, error) {
	current, err := Load(layout)
	if err != nil {
		return nil, err
	}
	merged := &Config{raw: deepMerge(current.raw, delta)}
	if err := Save(layout, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// deepMerge overlays src onto dst, recursing into nested maps and
// replacing scalar/array values outright. dst is not mutated; a new map
// is returned.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		if dv, ok := out[k]; ok {
			dstMap, dstIsMap := dv.(map[string]any)
			srcMap, srcIsMap := sv.(map[string]any)
			if dstIsMap && srcIsMap {
				out[k] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		out[k] = sv
	}
	return out
}

// Raw returns the merged configuration as a generic map, e.g. for JSON
// CLI output or for building an Update delta from a flag set.
func (c *Config) Raw() map[string]any {
	return c.raw
}

func (c *Config) group(name string) map[string]any {
	if g, ok := c.raw[name].(map[string]any); ok {
		return g
	}
	return nil
}

func intField(g map[string]any, key string, fallback int) int {
	v, ok := g[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func boolField(g map[string]any, key string, fallback bool) bool {
	v, ok := g[key]
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

func (c *Config) NoteMaxLength() int  { return intField(c.group("limits"), "noteMaxLength", 10000) }
func (c *Config) MaxTagsPerNote() int { return intField(c.group("limits"), "maxTagsPerNote", 10) }
func (c *Config) MaxAnchorsPerNote() int {
	return intField(c.group("limits"), "maxAnchorsPerNote", 20)
}
func (c *Config) TagDescriptionMaxLength() int {
	return intField(c.group("limits"), "tagDescriptionMaxLength", 2000)
}

func (c *Config) BackupOnMigration() bool {
	return boolField(c.group("storage"), "backupOnMigration", true)
}
func (c *Config) CompressionEnabled() bool {
	return boolField(c.group("storage"), "compressionEnabled", false)
}

func (c *Config) EnforceAllowedTags() bool {
	return boolField(c.group("tags"), "enforceAllowedTags", false)
}
func (c *Config) EnforceAllowedTypes() bool {
	return boolField(c.group("types"), "enforceAllowedTypes", false)
}

func stringSliceField(g map[string]any, key string) []string {
	v, ok := g[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) IgnorePatterns() []string {
	return stringSliceField(c.group("lint"), "ignorePatterns")
}
func (c *Config) AllowedMarkdownFolders() []string {
	return stringSliceField(c.group("lint"), "allowedMarkdownFolders")
}
func (c *Config) AllowedRootFiles() []string {
	return stringSliceField(c.group("lint"), "allowedRootFiles")
}
func (c *Config) ExceptionDirectories() []string {
	return stringSliceField(c.group("lint"), "exceptionDirectories")
}

// SeverityOverride returns a configured severity override for a rule id,
// if the repository's lint.severityOverrides group names one.
func (c *Config) SeverityOverride(ruleID string) (string, bool) {
	lint := c.group("lint")
	overrides, ok := lint["severityOverrides"].(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := overrides[ruleID].(string)
	return v, ok
}
