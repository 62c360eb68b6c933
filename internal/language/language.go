package language

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Normalize canonicalizes a language tag to its lowercase BCP-47 form, so
// platform variants like "EN-us" and "en_US" compare equal. Tags the parser
// does not recognize pass through lowercased and trimmed.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return strings.ToLower(parsed.String())
}

// Set is an allow-set of normalized language tags.
type Set struct {
	tags map[string]struct{}
}

// NewSet builds a Set from the provided tags, normalizing each.
func NewSet(tags ...string) *Set {
	set := &Set{tags: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		if normalized := Normalize(tag); normalized != "" {
			set.tags[normalized] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the tag, after normalization, is in the set.
func (s *Set) Contains(tag string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tags[Normalize(tag)]
	return ok
}

// Len returns the number of tags in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// Tags returns the normalized tags in sorted order.
func (s *Set) Tags() []string {
	if s == nil {
		return nil
	}
	tags := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultEnglish returns the English-dialect allow-set used when no languages
// are configured, ordered in source by similarity to en-us.
func DefaultEnglish() *Set {
	return NewSet(
		"en-us", "en", "en-ca", "en-gb", "en-ie", "en-au", "en-nz", "en-bz",
		"en-jm", "en-ph", "en-tt", "en-za", "en-zw",
	)
}
