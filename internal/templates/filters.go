package templates

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Filter is the parsed option list of a posts opening tag.
type Filter struct {
	Category    string
	HasCategory bool
	Limit       int // zero means no limit
}

// ParseFilter reads `| key=value | key2="value2"` options. The segment before
// the first bar is ignored, keys are case-insensitive and unknown keys are dropped.
func ParseFilter(args string) Filter {
	var f Filter
	segments := strings.Split(args, "|")
	for _, segment := range segments[1:] {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = unquote(strings.TrimSpace(value))
		switch key {
		case "category":
			f.Category = strings.TrimSpace(value)
			f.HasCategory = true
		case "limit":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
				f.Limit = n
			}
		}
	}
	return f
}

// Select applies a filter: drafts are dropped, the category filter is applied,
// the rest is sorted newest first and truncated to the limit.
func Select(items []content.Item, f Filter) []content.Item {
	out := make([]content.Item, 0, len(items))
	for _, item := range items {
		if item.IsDraft {
			continue
		}
		if f.HasCategory && !strings.EqualFold(strings.TrimSpace(item.Category), f.Category) {
			continue
		}
		out = append(out, item)
	}
	content.SortNewestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
