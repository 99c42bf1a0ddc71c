package livestate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/micro-nova/amplipi-prefs/internal/events"
	"github.com/micro-nova/amplipi-prefs/internal/identity"
	"github.com/micro-nova/amplipi-prefs/internal/models"
)

const defaultMinInterval = 250 * time.Millisecond

// FileSource reads the controller state from a house.json file and, once
// started, re-reads it whenever the file changes.
type FileSource struct {
	path     string
	override string
	bus      *events.Bus
	logger   *slog.Logger
	interval time.Duration
	hostAddr func() (string, error)

	mu     sync.RWMutex
	state  models.State
	loaded bool
}

// Option configures a FileSource.
type Option func(*FileSource)

// WithBus publishes every reload result on bus.
func WithBus(bus *events.Bus) Option {
	return func(s *FileSource) { s.bus = bus }
}

// WithIdentity overrides the identity derived from the state file.
func WithIdentity(id string) Option {
	return func(s *FileSource) { s.override = id }
}

// WithMinInterval sets the shortest gap between two reloads. Changes that
// arrive faster are folded into one reload.
func WithMinInterval(d time.Duration) Option {
	return func(s *FileSource) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *FileSource) { s.logger = l }
}

// NewFileSource returns a source for the state file at path. Nothing is read
// until Reload or Start is called.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:     path,
		interval: defaultMinInterval,
		hostAddr: identity.LocalHardwareAddr,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "livestate", "path", path)
	return s
}

// Path returns the watched state file.
func (s *FileSource) Path() string { return s.path }

// State returns the last successfully read state.
func (s *FileSource) State() (models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return models.State{}, ErrNotConnected
	}
	return s.state.DeepCopy(), nil
}

// Identity returns the configured override, else the identity in the state
// file, else this host's hardware address.
func (s *FileSource) Identity() (string, error) {
	s.mu.RLock()
	loaded, info := s.loaded, s.state.Info
	s.mu.RUnlock()
	if !loaded {
		return "", ErrNotConnected
	}
	return resolveIdentity(s.override, info, s.hostAddr)
}

// Reload re-reads the state file. On failure the previous state is kept and
// a SourceLost event is published.
func (s *FileSource) Reload() error {
	st, err := readState(s.path)
	if err != nil {
		s.logger.Warn("livestate: reload failed", "err", err)
		s.publish(events.Event{Kind: events.SourceLost, Err: err})
		return err
	}

	s.mu.Lock()
	s.state = st
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("livestate: reloaded", "zones", len(st.Zones), "groups", len(st.Groups))
	s.publish(events.Event{Kind: events.StateChanged, State: st.DeepCopy()})
	return nil
}

func (s *FileSource) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}

func readState(path string) (models.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.State{}, fmt.Errorf("livestate: read %s: %w", path, err)
	}
	var st models.State
	if err := json.Unmarshal(data, &st); err != nil {
		return models.State{}, fmt.Errorf("livestate: parse %s: %w", path, err)
	}
	if len(st.Zones) > models.MaxZones {
		return models.State{}, models.InvalidArgument(fmt.Sprintf("livestate: %s lists %d zones, more than %d", path, len(st.Zones), models.MaxZones))
	}
	return st, nil
}

// Start reads the state once and then watches the file until ctx is done.
// A failed first read is logged, not returned; the watcher keeps trying.
func (s *FileSource) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("livestate: create watcher: %w", err)
	}
	// Watch the directory: the daemon replaces house.json by rename.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("livestate: watch %s: %w", filepath.Dir(s.path), err)
	}

	_ = s.Reload()

	kick := make(chan struct{}, 1)
	go s.reloadLoop(ctx, kick)
	go s.watchLoop(ctx, watcher, kick)
	return nil
}

func (s *FileSource) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, kick chan<- struct{}) {
	defer watcher.Close()
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case kick <- struct{}{}:
			default:
				// A reload is already pending.
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("livestate: watcher error", "err", err)
		}
	}
}

func (s *FileSource) reloadLoop(ctx context.Context, kick <-chan struct{}) {
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)
	for {
		select {
		case <-ctx.Done():
			return
		case <-kick:
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		_ = s.Reload()
	}
}
