package review

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matcher tests sentences for one keyword or phrase.
//
// Keywords containing word characters are anchored at word boundaries so a
// short keyword never matches inside a longer word ("ip" in "equipment").
// Multi-word phrases tolerate any whitespace between their words. Keywords
// made only of punctuation match as plain substrings.
type Matcher struct {
	keyword string
	re      *regexp.Regexp
	bounded bool
}

// NewMatcher compiles a matcher for keyword. The keyword is trimmed and
// lower-cased; an empty keyword matches nothing.
func NewMatcher(keyword string) *Matcher {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	m := &Matcher{keyword: keyword}
	if keyword == "" {
		return m
	}

	parts := strings.Fields(keyword)
	switch {
	case len(parts) > 1:
		quoted := make([]string, len(parts))
		for i, p := range parts {
			quoted[i] = regexp.QuoteMeta(p)
		}
		m.re = regexp.MustCompile(strings.Join(quoted, `\s+`))
		m.bounded = true
	case strings.IndexFunc(keyword, isWordRune) >= 0:
		m.re = regexp.MustCompile(regexp.QuoteMeta(keyword))
		m.bounded = true
	default:
		m.re = regexp.MustCompile(regexp.QuoteMeta(keyword))
	}
	return m
}

// Keyword returns the normalized keyword.
func (m *Matcher) Keyword() string {
	return m.keyword
}

// Match reports whether the keyword occurs in s.
func (m *Matcher) Match(s string) bool {
	if m.re == nil {
		return false
	}
	offset := 0
	for offset <= len(s) {
		loc := m.re.FindStringIndex(s[offset:])
		if loc == nil {
			return false
		}
		start, end := offset+loc[0], offset+loc[1]
		if !m.bounded || (atBoundary(s, start) && atBoundary(s, end)) {
			return true
		}
		// Retry one rune later; a rejected candidate may overlap a valid one.
		_, size := utf8.DecodeRuneInString(s[start:])
		if size == 0 {
			return false
		}
		offset = start + size
	}
	return false
}

// atBoundary reports whether byte offset i in s sits between a word rune and
// a non-word rune (or the start/end of s).
func atBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// matchAny reports whether any matcher matches s.
func matchAny(matchers []*Matcher, s string) bool {
	for _, m := range matchers {
		if m.Match(s) {
			return true
		}
	}
	return false
}

func compileMatchers(keywords []string) []*Matcher {
	out := make([]*Matcher, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, NewMatcher(k))
	}
	return out
}
