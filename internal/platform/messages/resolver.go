// Package messages resolves message keys into user-facing text from a
// properties file.
package messages

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"
)

//go:embed configuration.properties
var defaultProperties []byte

// Resolver is a read-only key → message lookup. Safe for concurrent use once built.
type Resolver struct {
	v *viper.Viper
}

// New loads the embedded message catalogue and, when overlayPath is set,
// merges the properties file at that path on top of it.
func New(overlayPath string) (*Resolver, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(defaultProperties)); err != nil {
		return nil, fmt.Errorf("read embedded messages: %w", err)
	}
	if overlayPath != "" {
		v.SetConfigFile(overlayPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merge messages from %s: %w", overlayPath, err)
		}
	}
	return &Resolver{v: v}, nil
}

// FromMap builds a Resolver from literal entries.
func FromMap(entries map[string]string) *Resolver {
	v := newViper()
	for k, val := range entries {
		v.Set(k, val)
	}
	return &Resolver{v: v}
}

// Message keys contain dots, so "::" is the nesting delimiter to keep them flat.
func newViper() *viper.Viper {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("::"),
		viper.WithCodecRegistry(codecRegistry()),
	)
	v.SetConfigType(configType)
	return v
}

// Resolve returns the message for key. The boolean is false when the key is
// unknown, in which case the message is empty.
func (r *Resolver) Resolve(key string) (string, bool) {
	if key == "" || !r.v.IsSet(key) {
		return "", false
	}
	return r.v.GetString(key), true
}
