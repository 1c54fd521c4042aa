package size

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts the textual forms understood by Parse as well as bare
// YAML numbers, which are read as cells.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar", node.Line)
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}
