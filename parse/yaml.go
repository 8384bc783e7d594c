package parse

import (
	"fmt"

	"github.com/signadot/datafields/ir"
	"gopkg.in/yaml.v3"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc.Kind == 0 {
		return nil, ErrEmpty
	}
	return fromYAML(&doc, map[*yaml.Node]bool{})
}

// fromYAML converts a yaml node tree, expanding aliases and merge keys.
// active holds the aliases being expanded, to reject cycles.
func fromYAML(n *yaml.Node, active map[*yaml.Node]bool) (*ir.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ir.Null(), nil
		}
		return fromYAML(n.Content[0], active)
	case yaml.AliasNode:
		if active[n.Alias] {
			return nil, yamlErr(n, "recursive alias *%s", n.Value)
		}
		active[n.Alias] = true
		defer delete(active, n.Alias)
		return fromYAML(n.Alias, active)
	case yaml.SequenceNode:
		res := ir.FromSlice(nil)
		for _, c := range n.Content {
			v, err := fromYAML(c, active)
			if err != nil {
				return nil, err
			}
			res.Append(v)
		}
		return res, nil
	case yaml.MappingNode:
		res := ir.Object()
		if err := yamlMapping(res, n, active, false); err != nil {
			return nil, err
		}
		return res, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, yamlErr(n, "unexpected node kind %d", n.Kind)
}

// yamlMapping puts the entries of the mapping n into res. Merged entries
// never override keys already present.
func yamlMapping(res *ir.Node, n *yaml.Node, active map[*yaml.Node]bool, merged bool) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			if err := yamlMerge(res, v, active); err != nil {
				return err
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return yamlErr(k, "object key must be a scalar")
		}
		if merged && res.Has(k.Value) {
			continue
		}
		val, err := fromYAML(v, active)
		if err != nil {
			return err
		}
		res.Put(k.Value, val)
	}
	return nil
}

func yamlMerge(res *ir.Node, v *yaml.Node, active map[*yaml.Node]bool) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		return yamlMapping(res, v, active, true)
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if err := yamlMerge(res, c, active); err != nil {
				return err
			}
		}
		return nil
	}
	return yamlErr(v, "merge value must be a mapping")
}

func yamlScalar(n *yaml.Node) (*ir.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, yamlErr(n, "%v", err)
		}
		return ir.FromBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return ir.FromInt(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, yamlErr(n, "%v", err)
		}
		return ir.FromUint(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, yamlErr(n, "%v", err)
		}
		return ir.FromFloat(f), nil
	}
	return ir.FromString(n.Value), nil
}

func yamlErr(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: line %d column %d: %s", ErrParse, n.Line, n.Column, fmt.Sprintf(format, args...))
}
