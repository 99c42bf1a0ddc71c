// Command amplipi-prefs manages client-side favorites, usage history and sort
// order for the zones and groups of an AmpliPi controller.
// Run with -mock to use a simulated controller (no house.json required).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/micro-nova/amplipi-prefs/internal/config"
	"github.com/micro-nova/amplipi-prefs/internal/logging"
	"github.com/micro-nova/amplipi-prefs/internal/models"
)

type globalFlags struct {
	config       *string
	state        *string
	prefsDir     *string
	backend      *string
	controllerID *string
	debug        *bool
	mock         *bool
}

// settings loads the settings file and applies command-line overrides.
func (g globalFlags) settings() (*config.Settings, error) {
	s, err := config.LoadSettings(*g.config)
	if err != nil {
		return nil, err
	}
	if *g.state != "" {
		s.StatePath = *g.state
	}
	if *g.prefsDir != "" {
		s.Preferences.Dir = *g.prefsDir
	}
	if *g.backend != "" {
		s.Preferences.Backend = *g.backend
	}
	if *g.controllerID != "" {
		s.ControllerID = *g.controllerID
	}
	if *g.debug {
		s.Logging.Level = "debug"
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// withApp wraps a command body with settings, logging and app setup.
func (g globalFlags) withApp(w io.Writer, fn func(ctx context.Context, w io.Writer, a *app, args []string) error) func(context.Context, []string) error {
	return func(ctx context.Context, args []string) error {
		s, err := g.settings()
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(s.Logging))

		a, err := openApp(s, *g.mock)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(ctx, w, a, args)
	}
}

func kindCommand(name, help string, g globalFlags, w io.Writer, kind models.EntityKind) *ffcli.Command {
	return &ffcli.Command{
		Name:      name,
		ShortHelp: help,
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, _ []string) error {
			return runList(w, a, kind)
		}),
	}
}

func sortEditCommand(op, usage, help string, g globalFlags, w io.Writer) *ffcli.Command {
	return &ffcli.Command{
		Name:       op,
		ShortUsage: "amplipi-prefs sort " + op + " " + usage,
		ShortHelp:  help,
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, args []string) error {
			return runSortEdit(w, a, op, args)
		}),
	}
}

func newRootCommand(w io.Writer) *ffcli.Command {
	rootFlagSet := flag.NewFlagSet("amplipi-prefs", flag.ExitOnError)
	g := globalFlags{
		config:       rootFlagSet.String("config", config.SettingsPath(config.DefaultConfigDir()), "settings file (env: AMPLIPI_PREFS_CONFIG)"),
		state:        rootFlagSet.String("state", "", "controller house.json (overrides settings)"),
		prefsDir:     rootFlagSet.String("prefs-dir", "", "preference storage directory (overrides settings)"),
		backend:      rootFlagSet.String("backend", "", "preference backend: json, sqlite or memory"),
		controllerID: rootFlagSet.String("controller-id", "", "controller identity override"),
		debug:        rootFlagSet.Bool("debug", false, "enable debug logging"),
		mock:         rootFlagSet.Bool("mock", false, "use a simulated controller (no house.json required)"),
	}

	zonesCmd := kindCommand("zones", "List zones in sort order", g, w, models.KindZone)
	groupsCmd := kindCommand("groups", "List groups in sort order", g, w, models.KindGroup)

	favoriteCmd := &ffcli.Command{
		Name:       "favorite",
		ShortUsage: "amplipi-prefs favorite <zone|group> <id> <on|off|toggle>",
		ShortHelp:  "Set or toggle a favorite",
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, args []string) error {
			return runFavorite(w, a, args)
		}),
	}

	useCmd := &ffcli.Command{
		Name:       "use",
		ShortUsage: "amplipi-prefs use <zone|group> <id>",
		ShortHelp:  "Record a use of a zone or group",
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, args []string) error {
			return runUse(w, a, args)
		}),
	}

	resetCmd := &ffcli.Command{
		Name:       "reset",
		ShortUsage: "amplipi-prefs reset [<zone|group> <id>]",
		ShortHelp:  "Forget preferences for one entity, or all",
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, args []string) error {
			return runReset(w, a, args)
		}),
	}

	sortShowCmd := &ffcli.Command{
		Name:       "show",
		ShortUsage: "amplipi-prefs sort show <groups|zones>",
		ShortHelp:  "Show sort criteria",
		Exec: g.withApp(w, func(_ context.Context, w io.Writer, a *app, args []string) error {
			if len(args) != 1 {
				return errors.New("sort show requires groups or zones")
			}
			kind, err := models.ParseEntityKind(args[0])
			if err != nil {
				return err
			}
			return runSortShow(w, a, kind)
		}),
	}

	sortCmd := &ffcli.Command{
		Name:       "sort",
		ShortUsage: "amplipi-prefs sort <show|add|remove|move|order> <groups|zones> ...",
		ShortHelp:  "Edit sort criteria",
		Subcommands: []*ffcli.Command{
			sortShowCmd,
			sortEditCommand("add", "<groups|zones> <key> [ascending|descending]", "Append a sort key", g, w),
			sortEditCommand("remove", "<groups|zones> <index>", "Remove a sort key", g, w),
			sortEditCommand("move", "<groups|zones> <from> <to>", "Change a sort key's priority", g, w),
			sortEditCommand("order", "<groups|zones> <index> <ascending|descending>", "Change a sort key's order", g, w),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}

	watchCmd := &ffcli.Command{
		Name:       "watch",
		ShortUsage: "amplipi-prefs watch <zones|groups>",
		ShortHelp:  "Re-sort on every live state change",
		Exec: g.withApp(w, func(ctx context.Context, w io.Writer, a *app, args []string) error {
			if len(args) != 1 {
				return errors.New("watch requires zones or groups")
			}
			kind, err := models.ParseEntityKind(args[0])
			if err != nil {
				return err
			}
			return runWatch(ctx, w, a, kind)
		}),
	}

	return &ffcli.Command{
		ShortUsage:  "amplipi-prefs [flags] <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("AMPLIPI_PREFS")},
		Subcommands: []*ffcli.Command{zonesCmd, groupsCmd, favoriteCmd, useCmd, resetCmd, sortCmd, watchCmd},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := newRootCommand(os.Stdout)
	if err := root.ParseAndRun(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
