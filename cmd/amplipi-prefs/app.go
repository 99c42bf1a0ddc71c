package main

import (
	"fmt"
	"log/slog"

	"github.com/micro-nova/amplipi-prefs/internal/config"
	"github.com/micro-nova/amplipi-prefs/internal/controller"
	"github.com/micro-nova/amplipi-prefs/internal/events"
	"github.com/micro-nova/amplipi-prefs/internal/livestate"
	"github.com/micro-nova/amplipi-prefs/internal/models"
)

const mockControllerID = "mock-controller"

// app is one CLI invocation's wiring: settings, preference store, live
// source and the bound controller.
type app struct {
	settings *config.Settings
	store    config.Store
	sort     *config.SortSettings
	bus      *events.Bus
	ctrl     *controller.Controller

	// file is nil in mock mode.
	file *livestate.FileSource
}

// openApp opens the store and binds the controller to the live state.
func openApp(settings *config.Settings, mock bool) (*app, error) {
	store, err := settings.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	a := &app{
		settings: settings,
		store:    store,
		bus:      events.NewBus(),
		ctrl:     controller.New(store),
	}

	var src livestate.Source
	if mock {
		id := settings.ControllerID
		if id == "" {
			id = mockControllerID
		}
		slog.Info("using mock live state", "controller", id)
		src = livestate.NewStatic(models.DefaultState(), id)
	} else {
		a.file = livestate.NewFileSource(settings.StatePath,
			livestate.WithBus(a.bus),
			livestate.WithIdentity(settings.ControllerID),
			livestate.WithMinInterval(settings.Watch.MinInterval),
		)
		if err := a.file.Reload(); err != nil {
			store.Close()
			return nil, fmt.Errorf("reading live state: %w", err)
		}
		src = a.file
	}

	if err := a.bind(src); err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

// bind loads the sort criteria and binds the controller to src. On failure
// neither the criteria nor the binding change.
func (a *app) bind(src livestate.Source) error {
	sortSettings, err := config.LoadSortSettings(a.settings.Sort.Path)
	if err != nil {
		return err
	}
	if err := a.ctrl.Bind(src); err != nil {
		return err
	}
	a.sort = sortSettings
	return nil
}

// save persists preferences and flushes the store.
func (a *app) save() error {
	if err := a.ctrl.StorePreferences(); err != nil {
		return err
	}
	return a.store.Flush()
}

func (a *app) saveSort() error {
	return config.SaveSortSettings(a.settings.Sort.Path, a.sort)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("closing preference store", "path", a.store.Path(), "err", err)
	}
}
