package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mamaar/gocalc/internal/cli"
	"github.com/mamaar/gocalc/pkg/watch"
)

const defaultDebounce = 200 * time.Millisecond

// WatchCommand handles "watch <dir>". It runs until interrupted.
func WatchCommand(args []string) error {
	if len(args) != 1 {
		return usageError("watch <dir>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Watch(ctx, args[0], debounceFlag())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Watch evaluates every sheet under root once, then re-evaluates sheets as
// they change until ctx is cancelled.
func Watch(ctx context.Context, root string, debounce time.Duration) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}

	logger := cli.Logger()
	updater := watch.NewUpdater(printReport, logger)

	sheets, err := watch.FindSheets(root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	initial := make([]watch.ChangeEvent, len(sheets))
	for i, path := range sheets {
		initial[i] = watch.ChangeEvent{Path: path}
	}
	updater.HandleChanges(initial)

	w, err := watch.NewWatcher(root, debounce, logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	defer w.Close()

	logger.Info("watching", "root", root, "debounce", debounce)

	batches := make(chan []watch.ChangeEvent)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, batches)
	}()

	for {
		select {
		case batch := <-batches:
			updater.HandleChanges(batch)
		case err := <-done:
			return err
		}
	}
}

func debounceFlag() time.Duration {
	if cli.GlobalFlags == nil || cli.GlobalFlags.Debounce == nil {
		return defaultDebounce
	}
	return *cli.GlobalFlags.Debounce
}

func printReport(r watch.SheetReport) {
	if jsonOutput() {
		type line struct {
			Line       int    `json:"line"`
			Expression string `json:"expression"`
			Value      string `json:"value,omitempty"`
			Error      string `json:"error,omitempty"`
		}
		out := struct {
			Path    string `json:"path"`
			Removed bool   `json:"removed,omitempty"`
			Error   string `json:"error,omitempty"`
			Lines   []line `json:"lines,omitempty"`
		}{Path: r.Path, Removed: r.Removed}
		if r.Err != nil {
			out.Error = r.Err.Error()
		}
		for _, res := range r.Results {
			l := line{Line: res.Line, Expression: res.Expression, Error: res.Error()}
			if res.Err == nil {
				l.Value = res.Value.String()
			}
			out.Lines = append(out.Lines, l)
		}
		if err := OutputJSON(out); err != nil {
			cli.Logger().Error("write report", "path", r.Path, "err", err)
		}
		return
	}

	switch {
	case r.Removed:
		fmt.Fprintf(cli.Stdout, "%s: removed\n", r.Path)
	case r.Err != nil:
		fmt.Fprintf(cli.Stdout, "%s: %v\n", r.Path, r.Err)
	default:
		fmt.Fprintf(cli.Stdout, "%s:\n", r.Path)
		for _, res := range r.Results {
			if res.Err != nil {
				fmt.Fprintf(cli.Stdout, "  %d: %s = error: %v\n", res.Line, res.Expression, res.Err)
				continue
			}
			fmt.Fprintf(cli.Stdout, "  %d: %s = %s\n", res.Line, res.Expression, res.Value)
		}
	}
}
