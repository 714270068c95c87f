package templates

import "strings"

// Substitute replaces {{ name }} variables found in vars in a single pass.
// Other tags are left alone and inserted values are never scanned again, so a
// page body that itself contains "{{ title }}" is written as is.
func Substitute(template string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))
	for _, tok := range Tokenize(template) {
		if tok.Kind == TokenVariable {
			if v, ok := vars[tok.Name]; ok {
				b.WriteString(v)
				continue
			}
		}
		b.WriteString(tok.Raw)
	}
	return b.String()
}
