package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// File reads entries from a YAML or JSON document. The document is either a
// list of entries or a mapping with an "options" list.
type File struct {
	path string
}

// NewFile returns a source for the document at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path implements Source.
func (f *File) Path() string { return f.path }

// Load implements Source.
func (f *File) Load(ctx context.Context) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.CodeNotFound,
				fmt.Sprintf("catalog file %s does not exist", f.path), err)
		}
		return nil, apperrors.New(apperrors.CodeSourceFailed,
			fmt.Sprintf("read catalog file %s", f.path), err)
	}
	return Decode(data)
}

// Decode parses a catalog document. Entries are decoded one at a time: a
// malformed entry is skipped and described in the returned error, which then
// satisfies Skipped, while the remaining entries are still returned.
func Decode(data []byte) ([]catalog.Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, apperrors.New(apperrors.CodeParseFailed, "parse catalog", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	node := root.Content[0]

	var items []*yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		items = node.Content
	case yaml.MappingNode:
		list, err := optionsList(node)
		if err != nil {
			return nil, err
		}
		items = list
	default:
		return nil, apperrors.New(apperrors.CodeParseFailed,
			fmt.Sprintf("catalog must be a list or a mapping, line %d", node.Line), nil)
	}

	entries := make([]catalog.Entry, 0, len(items))
	var skipped []error
	for i, item := range items {
		var e catalog.Entry
		if err := item.Decode(&e); err != nil {
			skipped = append(skipped, apperrors.New(apperrors.CodeMalformedOption,
				fmt.Sprintf("catalog entry %d (line %d) was skipped", i+1, item.Line), err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, errors.Join(skipped...)
}

// optionsList returns the items under the "options" key of a mapping
// document. A mapping without that key holds no options.
func optionsList(doc *yaml.Node) ([]*yaml.Node, error) {
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "options" {
			continue
		}
		list := doc.Content[i+1]
		if list.Kind != yaml.SequenceNode {
			return nil, apperrors.New(apperrors.CodeParseFailed,
				fmt.Sprintf("catalog options must be a list, line %d", list.Line), nil)
		}
		return list.Content, nil
	}
	return nil, nil
}
