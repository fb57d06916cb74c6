package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"launchpad/internal/domain"
	"launchpad/internal/eventbus"
)

type mockUsage struct {
	mock.Mock
}

func (m *mockUsage) UsageCounts(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int)
	return counts, args.Error(1)
}

func candidates(names ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(names))
	for i, n := range names {
		out[i] = domain.Candidate{Name: n, Path: "/apps/" + n, Kind: domain.KindFile}
	}
	return out
}

func newCatalog(t *testing.T, opts Options, names ...string) *Catalog {
	t.Helper()
	c, err := New(context.Background(), NewMemoryCandidateStore(), nil, opts)
	require.NoError(t, err)
	c.Update("/apps", candidates(names...))
	return c
}

func TestSearchMatchesFuzzily(t *testing.T) {
	c := newCatalog(t, Options{}, "Calculator", "Calc Notes", "Terminal")

	got, err := c.Search(context.Background(), "calc")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Calculator", "Calc Notes"}, got)
}

func TestSearchBlankAndUnmatched(t *testing.T) {
	c := newCatalog(t, Options{}, "Calculator")

	got, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.Search(context.Background(), "xyz123notfound")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchTieBreaksByUsageThenName(t *testing.T) {
	c := newCatalog(t, Options{}, "Alpha Two", "Alpha One")

	got, err := c.Search(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha One", "Alpha Two"}, got)

	c.RecordUse("Alpha Two")

	got, err = c.Search(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Two", "Alpha One"}, got, "usage purges the cache and reorders ties")
}

func TestSearchLoadsUsageCounts(t *testing.T) {
	usage := &mockUsage{}
	usage.On("UsageCounts", mock.Anything).Return(map[string]int{"Alpha Two": 3}, nil).Once()

	c := newCatalog(t, Options{Usage: usage}, "Alpha One", "Alpha Two")

	got, err := c.Search(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Two", "Alpha One"}, got)
	usage.AssertExpectations(t)
}

func TestUsageErrorFallsBackToName(t *testing.T) {
	usage := &mockUsage{}
	usage.On("UsageCounts", mock.Anything).Return(nil, errors.New("db locked"))

	c := newCatalog(t, Options{Usage: usage}, "Alpha Two", "Alpha One")

	got, err := c.Search(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha One", "Alpha Two"}, got)
}

func TestSearchCapsResults(t *testing.T) {
	c := newCatalog(t, Options{MaxResults: 2}, "Item 1", "Item 2", "Item 3", "Item 4")

	got, err := c.Search(context.Background(), "item")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchReturnsCopies(t *testing.T) {
	c := newCatalog(t, Options{}, "Calculator")

	first, err := c.Search(context.Background(), "calc")
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0] = "mutated"

	second, err := c.Search(context.Background(), "calc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculator"}, second)
}

func TestUpdatePurgesCache(t *testing.T) {
	c := newCatalog(t, Options{}, "Terminal")

	got, err := c.Search(context.Background(), "news")
	require.NoError(t, err)
	assert.Empty(t, got)

	c.Update("/apps", candidates("Terminal", "Newsboat"))

	got, err = c.Search(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, []string{"Newsboat"}, got)
}

// racingStore runs onAll once, after reading the candidates and before
// returning them, like an Update landing in the middle of a Search
type racingStore struct {
	*MemoryCandidateStore
	onAll func()
}

func (s *racingStore) All() []domain.Candidate {
	out := s.MemoryCandidateStore.All()
	if f := s.onAll; f != nil {
		s.onAll = nil
		f()
	}
	return out
}

func TestUpdateDuringSearchIsNotOverwrittenByStaleResults(t *testing.T) {
	store := &racingStore{MemoryCandidateStore: NewMemoryCandidateStore()}
	c, err := New(context.Background(), store, nil, Options{})
	require.NoError(t, err)
	c.Update("/apps", candidates("Terminal"))

	store.onAll = func() { c.Update("/apps", candidates("Terminal", "Newsboat")) }
	got, err := c.Search(context.Background(), "news")
	require.NoError(t, err)
	assert.Empty(t, got, "matched against the candidates read before the update")

	got, err = c.Search(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, []string{"Newsboat"}, got)
}

func TestSearchHonoursCancelledContext(t *testing.T) {
	c := newCatalog(t, Options{}, "Calculator")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "calc")
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolve(t *testing.T) {
	c := newCatalog(t, Options{}, "Calculator")

	got, err := c.Resolve("Calculator")
	require.NoError(t, err)
	assert.Equal(t, "/apps/Calculator", got.Path)

	_, err = c.Resolve("Missing")
	require.ErrorIs(t, err, ErrUnknownCandidate)
}

func TestCatalogFollowsBusEvents(t *testing.T) {
	bus := eventbus.New(context.Background())
	defer bus.Close()

	c, err := New(context.Background(), NewMemoryCandidateStore(), bus, Options{})
	require.NoError(t, err)

	bus.Publish(eventbus.CandidatesDiscoveredEvent{Root: "/apps", Candidates: candidates("Alpha One", "Alpha Two")})
	require.Eventually(t, func() bool { return c.Len() == 2 }, time.Second, 10*time.Millisecond)

	bus.Publish(eventbus.LaunchCompletedEvent{Name: "Alpha Two"})
	require.Eventually(t, func() bool {
		got, err := c.Search(context.Background(), "alpha")
		return err == nil && len(got) == 2 && got[0] == "Alpha Two"
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStoreReplaceRoot(t *testing.T) {
	s := NewMemoryCandidateStore()
	s.ReplaceRoot("/b", candidates("Shared", "OnlyB"))
	s.ReplaceRoot("/a", []domain.Candidate{{Name: "Shared", Path: "/a/Shared"}})

	got, ok := s.Get("Shared")
	require.True(t, ok)
	assert.Equal(t, "/a/Shared", got.Path, "lowest root wins name clashes")
	assert.Equal(t, 2, s.Len())

	s.ReplaceRoot("/b", nil)
	assert.Equal(t, 1, s.Len())
	_, ok = s.Get("OnlyB")
	assert.False(t, ok)
}
