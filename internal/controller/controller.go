// Package controller keeps the client's preferences for the groups and zones
// of the AmpliPi controller it is bound to, and exposes them joined with the
// live state for sorting.
//
// Preferences are scoped by controller identity: binding to a live source
// loads that controller's tables, and persistence calls fail while unbound.
// The controller never decides when to persist; callers invoke
// StorePreferences.
package controller

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/config"
	"github.com/micro-nova/amplipi-prefs/internal/livestate"
	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// Controller is the preferences store for one client session.
type Controller struct {
	mu     sync.RWMutex
	store  config.Store
	logger *slog.Logger
	now    func() time.Time

	prefs        *config.ControllerPreferences
	source       livestate.Source
	controllerID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used by the implicit-date setters.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns an unbound controller with empty tables persisting to store.
// A nil store keeps preferences in memory only.
func New(store config.Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		now:   time.Now,
		prefs: config.NewControllerPreferences(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.store == nil {
		c.store = config.NewMemStore()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "controller")
	return c
}

// Bind attaches the controller to a live source and loads the preferences
// stored for its identity. On failure the controller is left as it was.
func (c *Controller) Bind(src livestate.Source) error {
	if src == nil {
		return models.InvalidArgument("live source is nil")
	}
	id, err := src.Identity()
	if err != nil {
		return fmt.Errorf("controller: bind: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loaded, err := c.load(id)
	if err != nil {
		return err
	}
	c.source = src
	c.controllerID = id
	c.prefs = loaded
	c.logger.Info("bound to controller", "controller", id,
		"groups", loaded.Groups.Len(), "zones", loaded.Zones.Len())
	return nil
}

// Unbind detaches the live source. The in-memory tables are kept.
func (c *Controller) Unbind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source == nil {
		return
	}
	c.logger.Info("unbound from controller", "controller", c.controllerID)
	c.source = nil
	c.controllerID = ""
}

// Bound reports whether a live source is attached.
func (c *Controller) Bound() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source != nil
}

// ControllerID returns the bound controller's identity.
func (c *Controller) ControllerID() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controllerID, c.source != nil
}

// LiveState returns the bound source's current state.
func (c *Controller) LiveState() (models.State, error) {
	c.mu.RLock()
	src := c.source
	c.mu.RUnlock()
	if src == nil {
		return models.State{}, models.ErrBindingRequired
	}
	return src.State()
}

// LoadPreferences replaces the tables with those stored for the bound
// controller. On failure the tables are untouched.
func (c *Controller) LoadPreferences() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source == nil {
		return models.ErrBindingRequired
	}
	loaded, err := c.load(c.controllerID)
	if err != nil {
		return err
	}
	c.prefs = loaded
	return nil
}

func (c *Controller) load(id string) (*config.ControllerPreferences, error) {
	loaded, err := c.store.Load(id)
	if err != nil {
		c.logger.Warn("failed to load preferences", "controller", id, "path", c.store.Path(), "err", err)
		return nil, fmt.Errorf("controller: load preferences: %w", err)
	}
	if loaded.Groups == nil {
		loaded.Groups = prefs.NewTable()
	}
	if loaded.Zones == nil {
		loaded.Zones = prefs.NewTable()
	}
	return loaded, nil
}

// StorePreferences writes both tables for the bound controller.
func (c *Controller) StorePreferences() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.source == nil {
		return models.ErrBindingRequired
	}
	if err := c.store.Save(c.controllerID, c.prefs); err != nil {
		return fmt.Errorf("controller: store preferences: %w", err)
	}
	c.logger.Debug("stored preferences", "controller", c.controllerID)
	return nil
}

// Preferences returns a copy of the tables.
func (c *Controller) Preferences() *config.ControllerPreferences {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prefs.Clone()
}
