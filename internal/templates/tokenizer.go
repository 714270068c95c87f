package templates

import (
	"regexp"
	"strings"
)

// TokenKind classifies a token produced by Tokenize.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenVariable
	TokenSectionOpen
	TokenSectionClose
	TokenPostsOpen
	TokenPostsClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenVariable:
		return "variable"
	case TokenSectionOpen:
		return "section-open"
	case TokenSectionClose:
		return "section-close"
	case TokenPostsOpen:
		return "posts-open"
	case TokenPostsClose:
		return "posts-close"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a template. Raw always holds the exact source
// text so a token stream can be written back unchanged.
type Token struct {
	Kind TokenKind
	Raw  string
	Name string // variable or section name
	Args string // text after "posts" in a posts opening tag
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
	postsKey   = "posts"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Tokenize splits a template into tokens. Anything between braces that is not
// a recognized tag, and an unterminated "{{", stays text.
func Tokenize(src string) []Token {
	var tokens []Token
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Raw: text.String()})
			text.Reset()
		}
	}

	for len(src) > 0 {
		start := strings.Index(src, openDelim)
		if start < 0 {
			text.WriteString(src)
			break
		}
		text.WriteString(src[:start])
		src = src[start:]

		end := strings.Index(src[len(openDelim):], closeDelim)
		if end < 0 {
			text.WriteString(src)
			break
		}
		raw := src[:len(openDelim)+end+len(closeDelim)]
		inner := raw[len(openDelim) : len(raw)-len(closeDelim)]

		tok, ok := classify(raw, inner)
		if !ok {
			// keep scanning after the first brace so "{{{x}}" still finds "{{x}}"
			text.WriteString(src[:1])
			src = src[1:]
			continue
		}
		flush()
		tokens = append(tokens, tok)
		src = src[len(raw):]
	}
	flush()
	return tokens
}

func classify(raw, inner string) (Token, bool) {
	trimmed := strings.TrimSpace(inner)
	switch {
	case trimmed == "":
		return Token{}, false
	case strings.HasPrefix(trimmed, "#"):
		name := strings.TrimSpace(trimmed[1:])
		if !identifier.MatchString(name) {
			return Token{}, false
		}
		return Token{Kind: TokenSectionOpen, Raw: raw, Name: name}, true
	case strings.HasPrefix(trimmed, "/"):
		name := strings.TrimSpace(trimmed[1:])
		if !identifier.MatchString(name) {
			return Token{}, false
		}
		if name == postsKey {
			return Token{Kind: TokenPostsClose, Raw: raw, Name: name}, true
		}
		return Token{Kind: TokenSectionClose, Raw: raw, Name: name}, true
	case isPostsOpen(trimmed):
		return Token{Kind: TokenPostsOpen, Raw: raw, Name: postsKey, Args: trimmed[len(postsKey):]}, true
	case identifier.MatchString(trimmed):
		return Token{Kind: TokenVariable, Raw: raw, Name: trimmed}, true
	default:
		return Token{}, false
	}
}

func isPostsOpen(trimmed string) bool {
	if !strings.HasPrefix(trimmed, postsKey) {
		return false
	}
	rest := trimmed[len(postsKey):]
	return rest == "" || rest[0] == '|' || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r'
}
