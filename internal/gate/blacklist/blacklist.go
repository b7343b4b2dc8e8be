// Package blacklist holds the set of visitor codes that are denied at the gate.
//
// Membership is an exact, case-sensitive string match: codes are opaque
// tokens and are never normalized. The set is configured at process start
// and is not mutated at runtime.
package blacklist

import (
	"context"
	"sort"

	pkgstrings "estategate/pkg/platform/strings"
)

// Registry answers blacklist membership queries.
type Registry interface {
	IsBlacklisted(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// Static is an in-process registry backed by a fixed set. It never fails.
type Static struct {
	codes map[string]struct{}
}

// NewStatic builds a registry from configured codes. Surrounding whitespace
// and duplicates are dropped; case is preserved.
func NewStatic(codes []string) *Static {
	cleaned := pkgstrings.DedupeAndTrim(codes)
	set := make(map[string]struct{}, len(cleaned))
	for _, c := range cleaned {
		set[c] = struct{}{}
	}
	return &Static{codes: set}
}

func (s *Static) IsBlacklisted(_ context.Context, code string) (bool, error) {
	_, ok := s.codes[code]
	return ok, nil
}

// List returns the configured codes in lexical order.
func (s *Static) List(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}
