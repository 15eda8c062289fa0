package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configs is the dotted-key configuration store shared by the kernel and the
// modules. It is not safe for concurrent mutation.
type Configs struct {
	v *viper.Viper
}

// New returns an empty store.
func New() *Configs {
	return &Configs{v: viper.New()}
}

// Get returns the value at key, or def when the key is not set.
func (c *Configs) Get(key string, def any) any {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.Get(key)
}

// GetString returns the value at key as a string, or def when unset.
func (c *Configs) GetString(key string, def string) string {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetString(key)
}

// GetInt returns the value at key as an int, or def when unset or not numeric.
func (c *Configs) GetInt(key string, def int) int {
	if !c.v.IsSet(key) {
		return def
	}
	n, err := cast.ToIntE(c.v.Get(key))
	if err != nil {
		return def
	}
	return n
}

// GetBool returns the value at key as a bool, or def when unset.
func (c *Configs) GetBool(key string, def bool) bool {
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetBool(key)
}

// GetStringSlice returns the value at key as a string slice. A plain string is
// split on commas, so environment variables can carry lists.
func (c *Configs) GetStringSlice(key string, def []string) []string {
	if !c.v.IsSet(key) {
		return def
	}
	if s, ok := c.v.Get(key).(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return c.v.GetStringSlice(key)
}

// IsSet reports whether key has a value in any layer.
func (c *Configs) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// Set overrides key. Overrides win over every loaded layer.
func (c *Configs) Set(key string, value any) {
	c.v.Set(key, value)
}

// SetDefault sets the lowest-precedence value for key.
func (c *Configs) SetDefault(key string, value any) {
	c.v.SetDefault(key, value)
}

// Merge deep-merges a nested map into the file layer.
func (c *Configs) Merge(values map[string]any) error {
	return c.v.MergeConfigMap(values)
}

// All returns every setting as a nested map.
func (c *Configs) All() map[string]any {
	return c.v.AllSettings()
}
