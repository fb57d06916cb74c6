package catalog

import (
	"sort"
	"strings"
	"sync"

	"launchpad/internal/domain"
)

// CandidateStore provides access to candidate data
type CandidateStore interface {
	Get(name string) (domain.Candidate, bool)
	All() []domain.Candidate
	ReplaceRoot(root string, candidates []domain.Candidate)
	Len() int
}

// MemoryCandidateStore is an in-memory implementation of CandidateStore.
// Candidates are grouped by the scan root that produced them so a rescan of
// one root replaces only its own entries.
type MemoryCandidateStore struct {
	mu     sync.RWMutex
	byRoot map[string][]domain.Candidate
	byName map[string]domain.Candidate
}

// NewMemoryCandidateStore creates a new memory-based candidate store
func NewMemoryCandidateStore() *MemoryCandidateStore {
	return &MemoryCandidateStore{
		byRoot: make(map[string][]domain.Candidate),
		byName: make(map[string]domain.Candidate),
	}
}

func (s *MemoryCandidateStore) Get(name string) (domain.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byName[name]
	return c, ok
}

// All returns the candidates sorted by name
func (s *MemoryCandidateStore) All() []domain.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Candidate, 0, len(s.byName))
	for _, c := range s.byName {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result
}

func (s *MemoryCandidateStore) ReplaceRoot(root string, candidates []domain.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.Candidate, len(candidates))
	copy(copied, candidates)
	if len(copied) == 0 {
		delete(s.byRoot, root)
	} else {
		s.byRoot[root] = copied
	}

	// roots are applied in sorted order so name clashes resolve the same way
	// on every rebuild
	roots := make([]string, 0, len(s.byRoot))
	for r := range s.byRoot {
		roots = append(roots, r)
	}
	sort.Strings(roots)

	s.byName = make(map[string]domain.Candidate)
	for _, r := range roots {
		for _, c := range s.byRoot[r] {
			if _, exists := s.byName[c.Name]; !exists {
				s.byName[c.Name] = c
			}
		}
	}
}

func (s *MemoryCandidateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}
