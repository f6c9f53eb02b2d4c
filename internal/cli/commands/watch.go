package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/internal/cli/config"
)

// DefaultDebounce is the quiet period after the last change of the model
// before it is generated again.
const DefaultDebounce = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(cfg Loader) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <model.xmi>",
		Short: "Generate again whenever the model changes",
		Long: `Generate the descriptors of a model, then watch the file and generate
them again after each change. Errors of a run are reported and watching
goes on. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := cfg(ctx)
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			run := func() error {
				g, err := buildGraph(ctx, c, path)
				if err != nil {
					return err
				}
				if err := write(ctx, g); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d entities in %s\n", len(g.Nodes), g.Target)
				return nil
			}
			if err := run(); err != nil {
				config.Logger(ctx).Error("generation failed", "file", path, "error", err)
			}
			return Watch(ctx, path, debounce, run)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "Quiet period before generating again")
	return cmd
}

// Watch calls run after each change of the file at path, once no other
// change happened for the debounce period. The directory of the file is
// watched, since editors often save by renaming a temporary file. It
// returns when ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, run func() error) error {
	log := config.Logger(ctx)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	log.Info("watching model", "file", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			log.Info("change detected", "file", filepath.Base(path))
			if err := run(); err != nil {
				log.Error("generation failed", "file", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
