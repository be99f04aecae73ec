package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlSchema is the on-disk shape of a rule schema document:
//
//	fields:
//	  - name: email
//	    rules:
//	      - type: required
//	      - type: email
//	        message: Please enter a valid email
//	  - name: age
//	    rules:
//	      - type: min
//	        value: 18
//
// Field and rule order in the document fixes violation order.
type yamlSchema struct {
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name  string     `yaml:"name"`
	Label string     `yaml:"label"`
	Kind  string     `yaml:"kind"`
	Rules []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Type    string   `yaml:"type"`
	Value   float64  `yaml:"value"`
	Pattern string   `yaml:"pattern"`
	Options []string `yaml:"options"`
	Message string   `yaml:"message"`
}

// FieldSpec describes one declared field of a loaded schema, for callers
// that render inputs from the document (the fill command does).
type FieldSpec struct {
	Name  string
	Label string
	Kind  string
}

// Document is a rule schema loaded from YAML. It implements Parser and
// additionally exposes the declared field list.
type Document struct {
	*ObjectSchema
	specs []FieldSpec
}

// FieldSpecs returns the declared fields in document order.
func (d *Document) FieldSpecs() []FieldSpec {
	return d.specs
}

// LoadYAML parses a rule schema document.
func LoadYAML(data []byte) (*Document, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schema: document declares no fields")
	}

	fields := make([]FieldRules, 0, len(doc.Fields))
	specs := make([]FieldSpec, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema: field with empty name")
		}
		rules := make([]Rule, 0, len(f.Rules))
		for _, r := range f.Rules {
			rule, err := ruleFromYAML(r)
			if err != nil {
				return nil, fmt.Errorf("schema: field %q: %w", f.Name, err)
			}
			rules = append(rules, rule)
		}
		fields = append(fields, Field(f.Name, rules...))

		label := f.Label
		if label == "" {
			label = titleCase(f.Name)
		}
		kind := f.Kind
		if kind == "" {
			kind = "text"
		}
		specs = append(specs, FieldSpec{Name: f.Name, Label: label, Kind: kind})
	}

	return &Document{ObjectSchema: Object(fields...), specs: specs}, nil
}

// LoadYAMLFile reads and parses a rule schema file.
func LoadYAMLFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return LoadYAML(data)
}

// titleCase upper-cases the first rune of an ASCII field name for use as a
// fallback label.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ruleFromYAML maps one rule entry to its Rule constructor.
func ruleFromYAML(r yamlRule) (Rule, error) {
	switch r.Type {
	case "required":
		return Required(r.Message), nil
	case "email":
		return Email(r.Message), nil
	case "url":
		return URL(r.Message), nil
	case "alpha":
		return Alpha(r.Message), nil
	case "numeric":
		return Numeric(r.Message), nil
	case "accepted":
		return Accepted(r.Message), nil
	case "minlength":
		return MinLength(int(r.Value), r.Message), nil
	case "maxlength":
		return MaxLength(int(r.Value), r.Message), nil
	case "min":
		return Min(r.Value, r.Message), nil
	case "max":
		return Max(r.Value, r.Message), nil
	case "pattern":
		if r.Pattern == "" {
			return nil, fmt.Errorf("pattern rule requires a pattern")
		}
		return PatternRule(r.Pattern, r.Message)
	case "contains":
		if r.Pattern == "" {
			return nil, fmt.Errorf("contains rule requires a pattern")
		}
		return Contains(r.Pattern, r.Message), nil
	case "oneof":
		if len(r.Options) == 0 {
			return nil, fmt.Errorf("oneof rule requires options")
		}
		return OneOf(r.Options, r.Message), nil
	case "":
		return nil, fmt.Errorf("rule with empty type")
	default:
		return nil, fmt.Errorf("unknown rule type %q", r.Type)
	}
}
