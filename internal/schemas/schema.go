// Package schemas holds the canonical structured-output schema definitions.
// Each schema is defined once as a node tree and derived into the three
// artifacts that consume it: the literal JSON example embedded in extraction
// prompts, the genai response schema for structured-output calls, and a JSON
// Schema document for validating strict-JSON responses. Deriving all three
// from one definition keeps them from drifting apart.
package schemas

import (
	"encoding/json"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// Kind is the type of a schema node.
type Kind int

// Node kinds.
const (
	KindString Kind = iota
	KindNumber
	KindObject
	KindArray
)

// Node describes one position in a schema tree.
type Node struct {
	Kind       Kind
	Properties []Property // object members, in definition order
	Items      *Node      // array element schema
	Minimum    *float64
	Maximum    *float64
}

// Property is a named object member. All members are required in every
// derived artifact; optionality is handled by the normalizer, not the schema.
type Property struct {
	Name string
	Node *Node
}

// String returns a string node.
func String() *Node { return &Node{Kind: KindString} }

// Number returns a number node bounded to [min, max].
func Number(min, max float64) *Node {
	return &Node{Kind: KindNumber, Minimum: &min, Maximum: &max}
}

// Object returns an object node with the given members.
func Object(props ...Property) *Node {
	return &Node{Kind: KindObject, Properties: props}
}

// Array returns an array node with the given element schema.
func Array(items *Node) *Node { return &Node{Kind: KindArray, Items: items} }

// Prop pairs a name with a node.
func Prop(name string, node *Node) Property { return Property{Name: name, Node: node} }

// PromptExample renders the schema as the compact JSON example shown to the
// model inside extraction prompts: empty strings, zeros, and single-element
// arrays.
func (n *Node) PromptExample() string {
	var sb strings.Builder
	n.writeExample(&sb)
	return sb.String()
}

func (n *Node) writeExample(sb *strings.Builder) {
	switch n.Kind {
	case KindString:
		sb.WriteString(`""`)
	case KindNumber:
		sb.WriteString("0")
	case KindArray:
		sb.WriteString("[")
		n.Items.writeExample(sb)
		sb.WriteString("]")
	case KindObject:
		sb.WriteString("{")
		for i, prop := range n.Properties {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"` + prop.Name + `":`)
			prop.Node.writeExample(sb)
		}
		sb.WriteString("}")
	}
}

// Genai derives the response schema for a structured-output model call.
func (n *Node) Genai() *genai.Schema {
	switch n.Kind {
	case KindString:
		return &genai.Schema{Type: genai.TypeString}
	case KindNumber:
		return &genai.Schema{Type: genai.TypeNumber}
	case KindArray:
		return &genai.Schema{Type: genai.TypeArray, Items: n.Items.Genai()}
	case KindObject:
		props := make(map[string]*genai.Schema, len(n.Properties))
		required := make([]string, 0, len(n.Properties))
		for _, prop := range n.Properties {
			props[prop.Name] = prop.Node.Genai()
			required = append(required, prop.Name)
		}
		return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
	}
	return nil
}

// JSONSchema derives a JSON Schema document for response validation.
func (n *Node) JSONSchema() string {
	data, _ := json.Marshal(n.jsonSchemaValue())
	return string(data)
}

func (n *Node) jsonSchemaValue() map[string]any {
	switch n.Kind {
	case KindString:
		return map[string]any{"type": "string"}
	case KindNumber:
		out := map[string]any{"type": "number"}
		if n.Minimum != nil {
			out["minimum"] = *n.Minimum
		}
		if n.Maximum != nil {
			out["maximum"] = *n.Maximum
		}
		return out
	case KindArray:
		return map[string]any{"type": "array", "items": n.Items.jsonSchemaValue()}
	case KindObject:
		props := make(map[string]any, len(n.Properties))
		required := make([]string, 0, len(n.Properties))
		for _, prop := range n.Properties {
			props[prop.Name] = prop.Node.jsonSchemaValue()
			required = append(required, prop.Name)
		}
		return map[string]any{"type": "object", "properties": props, "required": required}
	}
	return nil
}

// FieldNames returns the top-level member names of an object schema.
func (n *Node) FieldNames() []string {
	names := make([]string, 0, len(n.Properties))
	for _, prop := range n.Properties {
		names = append(names, prop.Name)
	}
	return names
}
