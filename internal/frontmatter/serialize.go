package frontmatter

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"
)

// SerializeFields serializes flat string fields into YAML bytes (without delimiters).
//
// Keys are sorted to keep output stable. Values are always emitted as YAML strings,
// quoted by the encoder when needed, so "true" or "2024-01-02" survive a round trip
// unchanged. If fields is empty, SerializeFields returns an empty slice.
func SerializeFields(fields map[string]string, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fields[k]},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if nl := style.Newline; nl != "" && nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}
