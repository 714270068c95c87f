// Package frontmatter splits content files into their metadata header and markdown
// body, and parses or serializes the header as flat string fields.
//
// Two header shapes are understood: a fenced YAML block delimited by `---` lines,
// and the legacy shape where the file simply starts with `key: value` lines.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Style captures newline details needed for stable rewriting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Document is a content file split into header and body.
type Document struct {
	Header []byte // raw header without delimiters
	Body   []byte
	Fenced bool // header came from a `---` block
	Style  Style
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNoHeader indicates the document has neither a fenced block nor leading key: value lines.
var ErrNoHeader = errors.New("no front matter header found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Split separates a fenced YAML header from the Markdown body.
//
// If the document does not start with a `---` line, Fenced is false and Body is
// the full input (minus a UTF-8 byte order mark).
func Split(content []byte) (Document, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	style := detectStyle(content)
	nl := style.Newline

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content, Style: style}, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return Document{Header: []byte{}, Body: content[start+len(closeLine):], Fenced: true, Style: style}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing fence on the very last line has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) && len(content)-len(nl+"---") >= start {
			end := len(content) - len(nl+"---")
			return Document{Header: content[start : end+len(nl)], Body: []byte{}, Fenced: true, Style: style}, nil
		}
		return Document{Style: style}, ErrMissingClosingDelimiter
	}

	headerEnd := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return Document{Header: content[start:headerEnd], Body: content[bodyStart:], Fenced: true, Style: style}, nil
}

// Join reassembles a document from a raw header and body using `---` fences.
func Join(header []byte, body []byte, style Style) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	fence := []byte("---" + nl)

	out := make([]byte, 0, 2*len(fence)+len(header)+len(body))
	out = append(out, fence...)
	out = append(out, header...)
	out = append(out, fence...)
	out = append(out, body...)
	return out
}

// ParseFields parses a fenced header into flat string fields.
//
// The block is decoded as YAML first. Headers that are not valid YAML (for
// example an unquoted title containing a colon) are re-read line by line as
// `key: value` pairs so a sloppy header never loses the whole file.
func ParseFields(header []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(header)) == 0 {
		return map[string]string{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(header, &raw); err == nil {
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			fields[k] = Stringify(v)
		}
		return fields, nil
	}

	fields, _ := parseHeaderLines(strings.Split(normalizeNewlines(string(header)), "\n"), false)
	if len(fields) == 0 {
		return nil, fmt.Errorf("front matter is neither YAML nor key: value lines")
	}
	return fields, nil
}

// ParseLegacy consumes the leading `key: value` lines of an unfenced document.
// Blank lines between header lines are tolerated; the first other line starts the body.
func ParseLegacy(content []byte) (map[string]string, []byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	lines := strings.SplitAfter(string(content), "\n")

	fields, consumed := parseHeaderLines(lines, true)
	if len(fields) == 0 {
		return nil, nil, ErrNoHeader
	}
	body := strings.Join(lines[consumed:], "")
	return fields, []byte(body), nil
}

var headerLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)[ \t]*:[ \t]*(.*?)[ \t]*$`)

// parseHeaderLines reads key: value pairs. With stopAtOther the scan ends at the
// first non-blank line that is not a header line; consumed is the count of lines
// read before it (trailing blank lines are left to the body).
func parseHeaderLines(lines []string, stopAtOther bool) (map[string]string, int) {
	fields := make(map[string]string)
	consumed := 0
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		m := headerLine.FindStringSubmatch(trimmed)
		if m == nil {
			if stopAtOther {
				break
			}
			continue
		}
		fields[m[1]] = unquote(m[2])
		consumed = i + 1
	}
	return fields, consumed
}

// Stringify renders a decoded YAML value as a flat string.
func Stringify(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case time.Time:
		if vv.Hour() == 0 && vv.Minute() == 0 && vv.Second() == 0 {
			return vv.Format("2006-01-02")
		}
		return vv.Format("2006-01-02 15:04:05")
	case []any:
		parts := make([]string, 0, len(vv))
		for _, item := range vv {
			if s := strings.TrimSpace(Stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(vv)
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
