// Package plan contains the discretized graph search at the heart of the
// engine: planning states, the quantizer that folds the continuous state
// manifold into finite keys, the thrust action model with its RK4
// integration, and the best-first solver with parent-pointer path
// reconstruction.
package plan

import (
	"sort"
	"strconv"
	"strings"
)

// ArtifactSet is an immutable-by-convention set of collected artifact ids.
// Mutating methods return fresh sets; callers never modify one in place.
type ArtifactSet map[uint32]struct{}

// NewArtifactSet builds a set from the given ids.
func NewArtifactSet(ids ...uint32) ArtifactSet {
	s := make(ArtifactSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s ArtifactSet) Contains(id uint32) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of collected artifacts.
func (s ArtifactSet) Len() int { return len(s) }

// With returns a copy of s extended with ids. When ids adds nothing, the
// receiver is returned unchanged.
func (s ArtifactSet) With(ids ...uint32) ArtifactSet {
	fresh := false
	for _, id := range ids {
		if !s.Contains(id) {
			fresh = true
			break
		}
	}
	if !fresh {
		return s
	}
	out := make(ArtifactSet, len(s)+len(ids))
	for id := range s {
		out[id] = struct{}{}
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in ascending order.
func (s ArtifactSet) Sorted() []uint32 {
	out := make([]uint32, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanonicalKey renders the set as a comparable string ("1,4,7"). Equal sets
// produce equal keys regardless of insertion order.
func (s ArtifactSet) CanonicalKey() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
