package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/events"
	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
	"github.com/micro-nova/amplipi-prefs/internal/sorting"
)

func parseRef(kindArg, idArg string) (models.EntityRef, error) {
	kind, err := models.ParseEntityKind(kindArg)
	if err != nil {
		return models.EntityRef{}, err
	}
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return models.EntityRef{}, models.InvalidArgument(fmt.Sprintf("invalid identifier %q", idArg))
	}
	return models.EntityRef{Kind: kind, ID: id}, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.InvalidArgument(fmt.Sprintf("invalid index %q", s))
	}
	return i, nil
}

func describeCriteria(c *sorting.Criteria) string {
	items := c.Items()
	if len(items) == 0 {
		return "identifier"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%s)", it.Key.Label(), sorting.Describe(it.Key, it.Order))
	}
	return strings.Join(parts, ", ")
}

func formatDate(d prefs.LastUsedDate) string {
	t, ok := d.Lookup()
	if !ok {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}

func formatFavorite(f prefs.Favorite) string {
	v, ok := f.Lookup()
	switch {
	case !ok:
		return "-"
	case v:
		return "yes"
	default:
		return "no"
	}
}

// runList prints the live entities of kind in sorted order.
func runList(w io.Writer, a *app, kind models.EntityKind) error {
	criteria := a.sort.For(kind)
	s := sorting.NewSorter(criteria, a.ctrl.SortSource(kind))
	if err := s.SortIdentifiers(); err != nil {
		return fmt.Errorf("sorting %ss: %w", kind, err)
	}

	fmt.Fprintf(w, "Sorted by: %s\n", describeCriteria(criteria))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tFAVORITE\tLAST USED\tUSES\tMUTE")
	for i, attr := range s.Sorted() {
		uses := "-"
		if n, err := a.ctrl.UseCount(models.EntityRef{Kind: kind, ID: attr.ID}); err == nil {
			uses = strconv.FormatUint(n, 10)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%t\n",
			i, attr.ID, attr.Name, formatFavorite(attr.Favorite), formatDate(attr.LastUsedDate), uses, attr.Mute)
	}
	return tw.Flush()
}

// runFavorite handles "favorite <zone|group> <id> <on|off|toggle>".
func runFavorite(w io.Writer, a *app, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: favorite <zone|group> <id> <on|off|toggle>")
	}
	ref, err := parseRef(args[0], args[1])
	if err != nil {
		return err
	}

	switch mode := strings.ToLower(args[2]); mode {
	case "on", "off":
		status, err := a.ctrl.SetFavorite(ref, mode == "on")
		if err != nil {
			return err
		}
		reportStatus(w, ref, status)
	case "toggle":
		fav, err := a.ctrl.ToggleFavorite(ref)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s favorite: %t\n", ref, fav)
	default:
		return models.InvalidArgument(fmt.Sprintf("expected on, off or toggle, got %q", args[2]))
	}
	return a.save()
}

func reportStatus(w io.Writer, ref models.EntityRef, status prefs.Status) {
	if !status.Changed() {
		fmt.Fprintf(w, "%s: %s\n", ref, status)
		return
	}
	fmt.Fprintf(w, "%s updated\n", ref)
}

// runUse handles "use <zone|group> <id>".
func runUse(w io.Writer, a *app, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: use <zone|group> <id>")
	}
	ref, err := parseRef(args[0], args[1])
	if err != nil {
		return err
	}
	n, err := a.ctrl.MarkUsed(ref)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s used %d times\n", ref, n)
	return a.save()
}

// runReset handles "reset [<zone|group> <id>]".
func runReset(w io.Writer, a *app, args []string) error {
	switch len(args) {
	case 0:
		a.ctrl.Reset()
		fmt.Fprintln(w, "all preferences reset")
	case 2:
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		if _, err := a.ctrl.ResetEntity(ref); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s reset\n", ref)
	default:
		return errors.New("usage: reset [<zone|group> <id>]")
	}
	return a.save()
}

// runSortShow prints the criteria for kind and the keys still available.
func runSortShow(w io.Writer, a *app, kind models.EntityKind) error {
	c := a.sort.For(kind)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tORDER")
	for i, it := range c.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, it.Key.Label(), sorting.Describe(it.Key, it.Order))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if avail := c.AvailableKeys(); len(avail) > 0 {
		names := make([]string, len(avail))
		for i, k := range avail {
			names[i] = k.String()
		}
		fmt.Fprintf(w, "Available: %s\n", strings.Join(names, ", "))
	}
	return nil
}

// runSortEdit applies one edit to the criteria of kind and saves them.
func runSortEdit(w io.Writer, a *app, op string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sort %s <groups|zones> ...", op)
	}
	kind, err := models.ParseEntityKind(args[0])
	if err != nil {
		return err
	}
	c := a.sort.For(kind)
	args = args[1:]

	switch op {
	case "add":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: sort add <groups|zones> <key> [ascending|descending]")
		}
		key, err := sorting.ParseKey(args[0])
		if err != nil {
			return err
		}
		order := sorting.OrderAscending
		if len(args) == 2 {
			if order, err = sorting.ParseOrder(args[1]); err != nil {
				return err
			}
		}
		if err := c.Add(key, order); err != nil {
			return err
		}
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: sort remove <groups|zones> <index>")
		}
		i, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := c.RemoveAt(i); err != nil {
			return err
		}
	case "move":
		if len(args) != 2 {
			return errors.New("usage: sort move <groups|zones> <from> <to>")
		}
		from, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		to, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		if err := c.Move(from, to); err != nil {
			return err
		}
	case "order":
		if len(args) != 2 {
			return errors.New("usage: sort order <groups|zones> <index> <ascending|descending>")
		}
		i, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		order, err := sorting.ParseOrder(args[1])
		if err != nil {
			return err
		}
		if err := c.SetOrderAt(i, order); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown sort command %q", op)
	}

	if err := a.saveSort(); err != nil {
		return err
	}
	return runSortShow(w, a, kind)
}

// runWatch re-sorts and prints kind on every live-state change until ctx is
// done.
func runWatch(ctx context.Context, w io.Writer, a *app, kind models.EntityKind) error {
	if a.file == nil {
		return errors.New("watch needs a live state file; run without -mock")
	}

	id, ch := a.bus.SubscribeNew()
	defer a.bus.Unsubscribe(id)

	if err := a.file.Start(ctx); err != nil {
		return err
	}
	slog.Info("watching live state", "path", a.file.Path(), "subscriber", id)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case events.SourceLost:
				slog.Warn("live state unavailable", "err", ev.Err)
				continue
			case events.StateChanged:
			}
			// Another invocation may have changed preferences or sort
			// criteria meanwhile.
			if err := a.bind(a.file); err != nil {
				slog.Warn("rebinding", "err", err)
			}
			fmt.Fprintf(w, "\n[%s]\n", ev.At.Local().Format(time.TimeOnly))
			if err := runList(w, a, kind); err != nil {
				slog.Warn("listing", "kind", kind, "err", err)
			}
		}
	}
}
