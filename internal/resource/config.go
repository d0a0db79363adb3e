package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the configuration data of one resource instance, as a generic
// tree of maps, slices and scalars.
type Config struct {
	raw any
}

// NewConfig wraps a generic configuration tree.
func NewConfig(raw any) Config {
	return Config{raw: raw}
}

// Raw returns the underlying tree.
func (c Config) Raw() any {
	return c.raw
}

// IsEmpty reports whether there is no configuration at all.
func (c Config) IsEmpty() bool {
	switch v := c.raw.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// Decode strictly decodes the configuration into target, a pointer to a
// struct with yaml tags. Unknown keys are rejected.
func (c Config) Decode(target any) error {
	if c.raw == nil {
		return nil
	}
	data, err := yaml.Marshal(c.raw)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Dump writes the configuration tree with deterministic key order.
func (c Config) Dump(w io.Writer, prefix string) {
	if c.IsEmpty() {
		fmt.Fprintf(w, "%s(no configuration)\n", prefix)
		return
	}
	dumpValue(w, prefix, c.raw)
}

func dumpValue(w io.Writer, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch t[k].(type) {
			case map[string]any, []any:
				fmt.Fprintf(w, "%s%s:\n", prefix, k)
				dumpValue(w, prefix+"  ", t[k])
			default:
				fmt.Fprintf(w, "%s%s: %v\n", prefix, k, t[k])
			}
		}
	case []any:
		for _, e := range t {
			switch e.(type) {
			case map[string]any, []any:
				fmt.Fprintf(w, "%s-\n", prefix)
				dumpValue(w, prefix+"  ", e)
			default:
				fmt.Fprintf(w, "%s- %v\n", prefix, e)
			}
		}
	default:
		fmt.Fprintf(w, "%s%v\n", prefix, t)
	}
}
