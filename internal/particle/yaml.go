package particle

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a scalar ("0.5", "[0.5 2.5]") or a
// mapping with min/max keys.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	case yaml.MappingNode:
		var m struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*r = Range{Min: m.Min, Max: m.Max}
		return nil
	case yaml.SequenceNode:
		// 未加引号的 [0.5 2.5] 会被 yaml 解析为单元素序列，[0.5, 2.5] 为双元素序列
		s := "["
		for i, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: range elements must be scalars", node.Line)
			}
			if i > 0 {
				s += " "
			}
			s += item.Value
		}
		parsed, err := ParseRange(s + "]")
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	default:
		return fmt.Errorf("line %d: range must be a scalar, a sequence or a min/max mapping", node.Line)
	}
}

// MarshalYAML writes the range back in bracket syntax.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML parses the keyframe curve syntax.
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: curve must be a scalar", node.Line)
	}
	parsed, err := ParseCurve(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the curve back in keyframe syntax.
func (c Curve) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
