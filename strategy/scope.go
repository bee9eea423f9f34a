package strategy

import (
	"fmt"
	"sort"
	"strings"
)

const ScopeStrategyName = "scope"

// DefaultScopeDelimiter is the OAuth2 scope separator from RFC 6749 §3.3.
const DefaultScopeDelimiter = " "

// ScopeStrategy splits scope strings into scope lists and merges them back.
// Merge output is normalized: trimmed, deduplicated, sorted.
type ScopeStrategy struct {
	delimiter string
}

func NewScopeStrategy(delimiter string) (*ScopeStrategy, error) {
	if delimiter == "" {
		return nil, fmt.Errorf("strategy: scope delimiter is required")
	}
	return &ScopeStrategy{delimiter: delimiter}, nil
}

// DefaultScopeStrategy returns the space-delimited strategy.
func DefaultScopeStrategy() *ScopeStrategy {
	s, _ := NewScopeStrategy(DefaultScopeDelimiter)
	return s
}

func (s *ScopeStrategy) Name() string {
	return ScopeStrategyName
}

func (s *ScopeStrategy) Delimiter() string {
	return s.delimiter
}

// Split breaks a scope string into normalized individual scopes. An empty
// input yields an empty list.
func (s *ScopeStrategy) Split(scopes string) []string {
	if strings.TrimSpace(scopes) == "" {
		return []string{}
	}
	return normalizeScopes(strings.Split(scopes, s.delimiter))
}

// Merge joins a scope list into a single string, deduplicating and sorting
// so equal scope sets always produce equal strings.
func (s *ScopeStrategy) Merge(scopes []string) string {
	return strings.Join(normalizeScopes(scopes), s.delimiter)
}

// Normalize trims, deduplicates, and sorts a scope list.
func (s *ScopeStrategy) Normalize(scopes []string) []string {
	return normalizeScopes(scopes)
}

func normalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return []string{}
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		trimmed := strings.TrimSpace(scope)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	sort.Strings(out)
	return out
}
