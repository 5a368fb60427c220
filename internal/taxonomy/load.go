package taxonomy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the taxonomies the dashboard ships with.
func Default() (Set, error) {
	return ParseYAML("default.yaml", defaultYAML)
}

// LoadFile reads a taxonomy set from a .yaml, .yml or .cue file.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, &LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("reading taxonomy: %v", err), Path: path}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return Set{}, &LoadError{
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("unsupported taxonomy format %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
			Path:    path,
		}
	}
}

// ParseYAML decodes a taxonomy set from YAML. Mappings are walked as nodes
// so entry order survives decoding; keyword scalars are taken verbatim, so
// "no" or "on" stay strings.
func ParseYAML(path string, data []byte) (Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing YAML: %v", err), Path: path}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return Set{}, &LoadError{Code: ErrCodeShape, Message: "taxonomy file must be a mapping with level and domain keys", Path: path}
	}

	root := doc.Content[0]
	var set Set
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		t, err := yamlTaxonomy(path, key.Value, val)
		if err != nil {
			return Set{}, err
		}
		switch key.Value {
		case NameLevel:
			set.Level = t
		case NameDomain:
			set.Domain = t
		default:
			return Set{}, &LoadError{
				Code:    ErrCodeUnknownKey,
				Message: fmt.Sprintf("unknown taxonomy %q (want %s or %s)", key.Value, NameLevel, NameDomain),
				Path:    path,
				Line:    key.Line,
			}
		}
	}

	if err := set.Validate(); err != nil {
		return Set{}, withPath(err, path)
	}
	return set, nil
}

func yamlTaxonomy(path, name string, node *yaml.Node) (Taxonomy, error) {
	t := Taxonomy{Name: name}
	if node.Kind != yaml.MappingNode {
		return t, &LoadError{Code: ErrCodeShape, Message: fmt.Sprintf("%s must map labels to keyword lists", name), Path: path, Line: node.Line}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		labelNode, kwNode := node.Content[i], node.Content[i+1]
		if kwNode.Kind != yaml.SequenceNode {
			return t, &LoadError{
				Code:    ErrCodeShape,
				Message: fmt.Sprintf("%s: %q must be a list of keywords", name, labelNode.Value),
				Path:    path,
				Line:    kwNode.Line,
			}
		}
		entry := Entry{Label: Label(labelNode.Value)}
		for _, kw := range kwNode.Content {
			if kw.Kind != yaml.ScalarNode {
				return t, &LoadError{
					Code:    ErrCodeShape,
					Message: fmt.Sprintf("%s: %q keywords must be strings", name, labelNode.Value),
					Path:    path,
					Line:    kw.Line,
				}
			}
			entry.Keywords = append(entry.Keywords, kw.Value)
		}
		t.Entries = append(t.Entries, entry)
	}
	return t, nil
}

// ParseCUE evaluates a CUE taxonomy file. Struct fields are iterated in
// declaration order.
func ParseCUE(path string, data []byte) (Set, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return Set{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("evaluating CUE: %v", err), Path: path}
	}

	iter, err := v.Fields()
	if err != nil {
		return Set{}, &LoadError{Code: ErrCodeShape, Message: fmt.Sprintf("taxonomy file must be a struct: %v", err), Path: path}
	}

	var set Set
	for iter.Next() {
		name := selectorName(iter.Selector())
		t, err := cueTaxonomy(path, name, iter.Value())
		if err != nil {
			return Set{}, err
		}
		switch name {
		case NameLevel:
			set.Level = t
		case NameDomain:
			set.Domain = t
		default:
			return Set{}, &LoadError{
				Code:    ErrCodeUnknownKey,
				Message: fmt.Sprintf("unknown taxonomy %q (want %s or %s)", name, NameLevel, NameDomain),
				Path:    path,
				Line:    iter.Value().Pos().Line(),
			}
		}
	}

	if err := set.Validate(); err != nil {
		return Set{}, withPath(err, path)
	}
	return set, nil
}

func cueTaxonomy(path, name string, v cue.Value) (Taxonomy, error) {
	t := Taxonomy{Name: name}
	fields, err := v.Fields()
	if err != nil {
		return t, &LoadError{Code: ErrCodeShape, Message: fmt.Sprintf("%s must map labels to keyword lists", name), Path: path, Line: v.Pos().Line()}
	}
	for fields.Next() {
		label := selectorName(fields.Selector())
		list, err := fields.Value().List()
		if err != nil {
			return t, &LoadError{
				Code:    ErrCodeShape,
				Message: fmt.Sprintf("%s: %q must be a list of keywords", name, label),
				Path:    path,
				Line:    fields.Value().Pos().Line(),
			}
		}
		entry := Entry{Label: Label(label)}
		for list.Next() {
			kw, err := list.Value().String()
			if err != nil {
				return t, &LoadError{
					Code:    ErrCodeShape,
					Message: fmt.Sprintf("%s: %q keywords must be strings", name, label),
					Path:    path,
					Line:    list.Value().Pos().Line(),
				}
			}
			entry.Keywords = append(entry.Keywords, kw)
		}
		t.Entries = append(t.Entries, entry)
	}
	return t, nil
}

func selectorName(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

// withPath stamps path onto a LoadError produced by validation.
func withPath(err error, path string) error {
	var le *LoadError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}
	return err
}
