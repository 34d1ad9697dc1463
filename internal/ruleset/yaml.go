package ruleset

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ritamzico/lognorm/internal/pdag"
	"github.com/ritamzico/lognorm/internal/value"
)

// yamlFile is the YAML rendering of the same rule-file shape
// grammar.go parses from text: named types (each a list of
// alternative patterns) plus top-level rules.
type yamlFile struct {
	Types map[string][][]yamlSegment `yaml:"types"`
	Rules []yamlRule                 `yaml:"rules"`
}

type yamlRule struct {
	Tags    []string      `yaml:"tags"`
	Pattern []yamlSegment `yaml:"pattern"`
}

// yamlSegment is a tagged union: exactly one of Lit, Type, or Parser
// should be set.
type yamlSegment struct {
	Lit    *string `yaml:"lit"`
	Type   *string `yaml:"type"`
	Parser *string `yaml:"parser"`
	Field  string  `yaml:"field"`
	Extra  *string `yaml:"extra"`
}

// LoadYAML parses a rule file in YAML form from r and drives ctx's
// builder, the same way Load does for the text grammar (spec.md §6
// "external loader" collaborator, alternate on-disk format).
func LoadYAML(ctx *pdag.Context, r io.Reader) error {
	var file yamlFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return Error{Kind: "SyntaxError", Message: err.Error()}
	}

	for name := range file.Types {
		if _, ok := ctx.FindType(name); !ok {
			ctx.NewType(name)
		}
	}

	for name, alternatives := range file.Types {
		t, _ := ctx.FindType(name)
		for _, pattern := range alternatives {
			segs, err := convertYAMLSegments(pattern)
			if err != nil {
				return err
			}
			if err := addSegments(ctx, t.Root, segs, nil); err != nil {
				return err
			}
		}
	}

	for _, rule := range file.Rules {
		segs, err := convertYAMLSegments(rule.Pattern)
		if err != nil {
			return err
		}
		var tags *value.Object
		if len(rule.Tags) > 0 {
			tags = value.NewObject()
			for _, tag := range rule.Tags {
				tags.AttachString(tag, "")
			}
		}
		if err := addSegments(ctx, ctx.Root, segs, tags); err != nil {
			return err
		}
	}
	return nil
}

func convertYAMLSegments(in []yamlSegment) ([]*Segment, error) {
	out := make([]*Segment, 0, len(in))
	for _, ys := range in {
		seg, err := convertYAMLSegment(ys)
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

func convertYAMLSegment(ys yamlSegment) (*Segment, error) {
	switch {
	case ys.Lit != nil:
		// LiteralSegment.Text carries its quotes in the text-grammar
		// path (addSegment trims them); re-wrap here so both loaders
		// share the same addSegment/addSegments code.
		return &Segment{Literal: &LiteralSegment{Text: `"` + *ys.Lit + `"`}}, nil

	case ys.Type != nil:
		return &Segment{Type: &TypeSegment{
			TypeName:  *ys.Type,
			FieldName: yamlFieldName(ys.Field),
		}}, nil

	case ys.Parser != nil:
		fs := &FieldSegment{Parser: *ys.Parser, FieldName: yamlFieldName(ys.Field)}
		fs.ExtraData = ys.Extra
		return &Segment{Field: fs}, nil

	default:
		return nil, Error{Kind: "InvalidSyntax", Message: "segment has neither lit, type, nor parser set"}
	}
}

func yamlFieldName(field string) FieldName {
	switch field {
	case "", pdag.Discard:
		return FieldName{Discard: true}
	case pdag.Merge:
		return FieldName{Merge: true}
	default:
		return FieldName{Name: field}
	}
}
