package messages

import (
	"fmt"
	"slices"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

const configType = "properties"

// propertiesCodec reads Java-style properties files into a flat map.
// Dotted keys are kept whole rather than expanded into nested maps.
type propertiesCodec struct{}

func (propertiesCodec) Decode(b []byte, v map[string]any) error {
	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return fmt.Errorf("parse properties: %w", err)
	}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		v[key] = value
	}
	return nil
}

func (propertiesCodec) Encode(v map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%v\n", k, v[k])
	}
	return []byte(sb.String()), nil
}

func codecRegistry() *viper.DefaultCodecRegistry {
	reg := viper.NewCodecRegistry()
	// Registering a fixed format name into a fresh registry cannot fail.
	_ = reg.RegisterCodec(configType, propertiesCodec{})
	return reg
}
