package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const debounceDuration = 500 * time.Millisecond

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Builds once, then rebuilds whenever a post or template changes",
	Long: `The watch command performs an initial build, then watches the input
directory and any configured header or footer template, rebuilding the site
after changes settle. Stop it with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx)
	},
}

func runWatch(ctx context.Context) error {
	logger := slog.Default()

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err := runBuildProcess(ctx, appConfig); err != nil {
			logger.Error("build failed", "error", err)
		}
	}

	logger.Info("performing initial build")
	rebuild()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := newWatchTargets(appConfig.InputDir, appConfig.HeaderTemplate, appConfig.FooterTemplate)
	for _, dir := range targets.dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("not watching directory", "path", dir, "error", err)
			continue
		}
		logger.Info("watching", "path", dir)
	}

	var buildTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if buildTimer != nil {
				buildTimer.Stop()
			}
			// Wait for a rebuild already in progress.
			mu.Lock()
			logger.Info("stopped watching")
			mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !targets.triggers(event.Name) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchTargets tracks the inputs whose changes trigger a rebuild. Template
// files are watched through their parent directory so editors that save
// by renaming a new file into place keep triggering. Output pages and the
// index page are written by the build and never watched.
type watchTargets struct {
	inputDir  string
	templates map[string]bool
	dirs      []string
}

func newWatchTargets(inputDir string, templates ...string) watchTargets {
	t := watchTargets{
		inputDir:  filepath.Clean(inputDir),
		templates: map[string]bool{},
	}
	seen := map[string]bool{}
	addDir := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			t.dirs = append(t.dirs, dir)
		}
	}

	addDir(t.inputDir)
	for _, tpl := range templates {
		if tpl == "" {
			continue
		}
		tpl = filepath.Clean(tpl)
		t.templates[tpl] = true
		addDir(filepath.Dir(tpl))
	}
	return t
}

// triggers reports whether a change to name should rebuild the site.
func (t watchTargets) triggers(name string) bool {
	name = filepath.Clean(name)
	return filepath.Dir(name) == t.inputDir || t.templates[name]
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
