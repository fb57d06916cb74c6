package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"launchpad/internal/domain"
	"launchpad/internal/eventbus"
	"launchpad/internal/logging"
)

// ErrScanInProgress is returned by StartScan while a previous scan runs
var ErrScanInProgress = errors.New("scan already in progress")

// DiscoveryService finds launchable candidates in the launch folder
type DiscoveryService interface {
	Scan(ctx context.Context, root string) ([]domain.Candidate, error)
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// Options tune the scanner
type Options struct {
	MaxDepth int
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	opts       Options
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service that also answers
// ScanRequestedEvent on the bus.
func NewDiscoveryService(ctx context.Context, bus eventbus.EventBus, opts Options) DiscoveryService {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 3
	}
	ds := &discoveryService{
		bus:  bus,
		opts: opts,
	}

	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ScanRequestedEvent)
		if !ok {
			return
		}
		if err := ds.StartScan(ctx, event.Roots); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("scan request ignored")
		}
	})

	return ds
}

// StartScan scans roots in the background and publishes the results
func (ds *discoveryService) StartScan(ctx context.Context, roots []string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return ErrScanInProgress
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Roots: roots})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		found := 0
		defer func() {
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()
			cancel()

			ds.bus.Publish(eventbus.ScanCompletedEvent{CandidatesFound: found})
		}()

		for _, root := range roots {
			if scanCtx.Err() != nil {
				return
			}
			candidates, err := ds.Scan(scanCtx, root)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					ds.bus.Publish(eventbus.ErrorEvent{
						Message: fmt.Sprintf("Failed to scan %s", root),
						Err:     err,
					})
				}
				continue
			}
			found += len(candidates)
			ds.bus.Publish(eventbus.CandidatesDiscoveredEvent{Root: root, Candidates: candidates})
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Scan walks root synchronously and returns its candidates sorted by name.
// Duplicate display names keep the shallowest entry.
func (ds *discoveryService) Scan(ctx context.Context, root string) ([]domain.Candidate, error) {
	log := logging.FromContext(logging.WithComponent(ctx, "discovery"))

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	seen := make(map[string]bool)
	var candidates []domain.Candidate

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if path == root {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		depth := strings.Count(relPath, string(filepath.Separator))

		if d.IsDir() {
			if skipDir(d.Name()) || depth >= ds.opts.MaxDepth {
				return fs.SkipDir
			}
			if strings.EqualFold(filepath.Ext(d.Name()), ".app") {
				add(&candidates, seen, domain.Candidate{
					Name: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
					Path: path,
					Kind: domain.KindBundle,
				})
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		candidate, ok := classify(path, d)
		if ok {
			add(&candidates, seen, candidate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
	})

	log.Debug().Str("root", root).Int("candidates", len(candidates)).Msg("scan finished")
	return candidates, nil
}

func add(candidates *[]domain.Candidate, seen map[string]bool, c domain.Candidate) {
	if c.Name == "" || seen[c.Name] {
		return
	}
	seen[c.Name] = true
	*candidates = append(*candidates, c)
}

// skipDir reports directories that never hold launchable entries
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "target", "build", "dist":
		return true
	}
	return false
}
