package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sahilm/fuzzy"

	"launchpad/internal/domain"
	"launchpad/internal/eventbus"
	"launchpad/internal/logging"
)

// ErrUnknownCandidate is returned when a name is not in the catalog
var ErrUnknownCandidate = errors.New("unknown candidate")

const (
	defaultMaxResults = 50
	cacheSize         = 256
)

// UsageSource supplies launch counts per candidate name
type UsageSource interface {
	UsageCounts(ctx context.Context) (map[string]int, error)
}

// Options configure a Catalog
type Options struct {
	MaxResults int
	Usage      UsageSource
}

// Catalog is the default search provider. It ranks candidates from the
// store with fuzzy matching and breaks ties by launch count, then by name.
type Catalog struct {
	store      CandidateStore
	maxResults int
	cache      *lru.Cache[string, []string]

	mu    sync.RWMutex
	usage map[string]int

	// bumped whenever cached results go stale
	generation uint64
}

// New creates a catalog over store. When bus is non-nil the catalog keeps
// itself current from discovery and launch events.
func New(ctx context.Context, store CandidateStore, bus eventbus.EventBus, opts Options) (*Catalog, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	c := &Catalog{
		store:      store,
		maxResults: opts.MaxResults,
		cache:      cache,
		usage:      make(map[string]int),
	}

	log := logging.FromContext(logging.WithComponent(ctx, "catalog"))
	if opts.Usage != nil {
		counts, err := opts.Usage.UsageCounts(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load usage counts, ranking by name only")
		} else {
			c.usage = counts
		}
	}

	if bus != nil {
		bus.Subscribe(eventbus.EventCandidatesDiscovered, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.CandidatesDiscoveredEvent); ok {
				c.Update(event.Root, event.Candidates)
				log.Debug().Str("root", event.Root).Int("count", len(event.Candidates)).Msg("catalog updated")
			}
		})
		bus.Subscribe(eventbus.EventLaunchCompleted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.LaunchCompletedEvent); ok {
				c.RecordUse(event.Name)
			}
		})
	}

	return c, nil
}

// Update replaces the candidates found under root
func (c *Catalog) Update(root string, candidates []domain.Candidate) {
	c.store.ReplaceRoot(root, candidates)
	c.invalidate()
}

// RecordUse bumps the launch count of name
func (c *Catalog) RecordUse(name string) {
	c.mu.Lock()
	c.usage[name]++
	c.mu.Unlock()
	c.invalidate()
}

func (c *Catalog) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Purge()
}

// Resolve returns the candidate with the given display name
func (c *Catalog) Resolve(name string) (domain.Candidate, error) {
	candidate, ok := c.store.Get(name)
	if !ok {
		return domain.Candidate{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, name)
	}
	return candidate, nil
}

// Len returns the number of known candidates
func (c *Catalog) Len() int {
	return c.store.Len()
}

// Search returns display names matching query, best first
func (c *Catalog) Search(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if cached, ok := c.cache.Get(query); ok {
		return cloneStrings(cached), nil
	}

	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	candidates := c.store.All()
	matches := fuzzy.FindFrom(query, candidateSource(candidates))

	c.mu.RLock()
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if ua, ub := c.usage[a.Str], c.usage[b.Str]; ua != ub {
			return ua > ub
		}
		return strings.ToLower(a.Str) < strings.ToLower(b.Str)
	})
	c.mu.RUnlock()

	limit := len(matches)
	if limit > c.maxResults {
		limit = c.maxResults
	}
	results := make([]string, limit)
	for i := 0; i < limit; i++ {
		results[i] = matches[i].Str
	}

	// an update that ran while matching already purged the cache; do not
	// put results from the old candidates back
	c.mu.Lock()
	if c.generation == generation {
		c.cache.Add(query, results)
	}
	c.mu.Unlock()
	return cloneStrings(results), nil
}

type candidateSource []domain.Candidate

func (s candidateSource) String(i int) string { return s[i].Name }
func (s candidateSource) Len() int            { return len(s) }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
