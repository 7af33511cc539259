package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// checkKeys rejects mapping keys outside allowed. Types with their own UnmarshalYAML decode
// through value.Decode, which does not inherit the caller's KnownFields setting.
func checkKeys(value *yaml.Node, kind string, allowed map[string]struct{}) error {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if _, ok := allowed[k.Value]; !ok {
			return fmt.Errorf("%s: unsupported key %q (line %d)", kind, k.Value, k.Line)
		}
	}
	return nil
}
