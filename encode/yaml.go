package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signadot/datafields/ir"
	"gopkg.in/yaml.v3"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	y, err := toYAML(node)
	if err != nil {
		return err
	}
	if es.wire {
		y.Style = yaml.FlowStyle
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(es.indent)
	if err := enc.Encode(y); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return enc.Close()
}

func toYAML(node *ir.Node) (*yaml.Node, error) {
	if node == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, f := range node.Fields {
			v, err := toYAML(node.Values[i])
			if err != nil {
				return nil, err
			}
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.String}
			res.Content = append(res.Content, k, v)
		}
		return res, nil
	case ir.ArrayType:
		res := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range node.Values {
			v, err := toYAML(e)
			if err != nil {
				return nil, err
			}
			res.Content = append(res.Content, v)
		}
		return res, nil
	case ir.StringType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: node.String}, nil
	case ir.NumberType:
		return yamlNumber(node)
	case ir.BoolType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(node.Bool)}, nil
	case ir.NullType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
}

func yamlNumber(node *ir.Node) (*yaml.Node, error) {
	res := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int"}
	if node.Float64 != nil {
		res.Tag = "!!float"
		f := *node.Float64
		switch {
		case math.IsNaN(f):
			res.Value = ".nan"
			return res, nil
		case math.IsInf(f, 1):
			res.Value = ".inf"
			return res, nil
		case math.IsInf(f, -1):
			res.Value = "-.inf"
			return res, nil
		}
	}
	v, err := numberText(node)
	if err != nil {
		return nil, err
	}
	res.Value = v
	return res, nil
}
