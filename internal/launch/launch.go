package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/shlex"

	"launchpad/internal/domain"
	"launchpad/internal/eventbus"
	"launchpad/internal/history"
	"launchpad/internal/logging"
)

// ErrEmptyCommand is returned when a candidate resolves to no command line
var ErrEmptyCommand = errors.New("empty launch command")

// Resolver maps a display name back to its candidate
type Resolver interface {
	Resolve(name string) (domain.Candidate, error)
}

// Recorder stores successful launches
type Recorder interface {
	RecordLaunch(ctx context.Context, e history.Entry) error
}

// StartFunc starts argv detached from the launcher and returns its pid
type StartFunc func(argv []string, dir string) (int, error)

// Executor starts candidates
type Executor struct {
	resolver Resolver
	recorder Recorder
	bus      eventbus.EventBus
	opener   string
	start    StartFunc
	now      func() time.Time
}

// Option configures an Executor
type Option func(*Executor)

// WithRecorder records every successful launch
func WithRecorder(r Recorder) Option {
	return func(e *Executor) { e.recorder = r }
}

// WithStartFunc replaces the process starter
func WithStartFunc(f StartFunc) Option {
	return func(e *Executor) { e.start = f }
}

// NewExecutor creates an executor. opener is a command template such as
// "xdg-open {path}" used for anything that is not directly executable.
func NewExecutor(resolver Resolver, bus eventbus.EventBus, opener string, opts ...Option) *Executor {
	e := &Executor{
		resolver: resolver,
		bus:      bus,
		opener:   opener,
		start:    startDetached,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Launch starts the candidate named id
func (e *Executor) Launch(ctx context.Context, id string) error {
	log := logging.FromContext(logging.WithComponent(ctx, "launch"))

	err := e.launch(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("name", id).Msg("launch failed")
		e.publish(eventbus.LaunchFailedEvent{Name: id, Err: err})
		return err
	}
	return nil
}

func (e *Executor) launch(ctx context.Context, id string) error {
	log := logging.FromContext(logging.WithComponent(ctx, "launch"))

	candidate, err := e.resolver.Resolve(id)
	if err != nil {
		return err
	}

	argv, err := Command(candidate, e.opener)
	if err != nil {
		return fmt.Errorf("failed to build command for %s: %w", id, err)
	}

	pid, err := e.start(argv, filepath.Dir(candidate.Path))
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", id, err)
	}

	at := e.now()
	log.Info().Str("name", id).Strs("argv", argv).Int("pid", pid).Msg("launched")

	if e.recorder != nil {
		if err := e.recorder.RecordLaunch(ctx, history.Entry{Name: candidate.Name, Path: candidate.Path, At: at}); err != nil {
			log.Warn().Err(err).Msg("failed to record launch history")
		}
	}

	e.publish(eventbus.LaunchCompletedEvent{Name: candidate.Name, Path: candidate.Path, PID: pid, At: at})
	return nil
}

func (e *Executor) publish(event eventbus.DomainEvent) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}

// Command builds the argv for a candidate
func Command(c domain.Candidate, opener string) ([]string, error) {
	switch {
	case c.Kind == domain.KindExecutable:
		return []string{c.Path}, nil
	case c.Kind == domain.KindDesktopEntry && strings.TrimSpace(c.Exec) != "":
		argv, err := shlex.Split(c.Exec)
		if err != nil {
			return nil, fmt.Errorf("invalid Exec line %q: %w", c.Exec, err)
		}
		if len(argv) == 0 {
			return nil, ErrEmptyCommand
		}
		return argv, nil
	}
	return Expand(opener, map[string]string{"path": c.Path}, "path")
}

// Expand splits template with shell quoting rules and substitutes {key}
// placeholders in each word. When appendKey is non-empty and the template
// never mentions it, that value is appended as a final argument.
func Expand(template string, values map[string]string, appendKey string) ([]string, error) {
	words, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("invalid command template %q: %w", template, err)
	}
	if len(words) == 0 {
		return nil, ErrEmptyCommand
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	used := false
	argv := make([]string, 0, len(words)+1)
	for _, w := range words {
		for _, k := range keys {
			placeholder := "{" + k + "}"
			if strings.Contains(w, placeholder) {
				w = strings.ReplaceAll(w, placeholder, values[k])
				if k == appendKey {
					used = true
				}
			}
		}
		argv = append(argv, w)
	}
	if appendKey != "" && !used {
		argv = append(argv, values[appendKey])
	}
	return argv, nil
}

func startDetached(argv []string, dir string) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// reap the child; its exit status is not interesting
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
