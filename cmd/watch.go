package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/ireal/song"
	"github.com/jsphweid/ireal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-renders chart files when they change",
	Long:  `Watches a directory and prints the charts of any chart file that is created or written, once saves settle.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watch(ctx, args[0], cmd.OutOrStdout())
	},
}

func watch(ctx context.Context, dir string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching", zap.String("dir", dir), zap.Duration("debounce", cfg.Watch.Debounce))

	dec := newDecoder()
	// one debouncer per file so a burst of saves renders once
	debouncers := make(map[string]func(func()))
	var mu sync.Mutex
	for {
		select {
		case <-ctx.Done():
			// let a render in flight finish; later ones see ctx.Err
			mu.Lock()
			mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !util.HasExt(event.Name, chartExts) || event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := event.Name
			debounced, ok := debouncers[path]
			if !ok {
				debounced = debounce.New(cfg.Watch.Debounce)
				debouncers[path] = debounced
			}
			debounced(func() {
				mu.Lock()
				defer mu.Unlock()
				renderChanged(ctx, dec, path, w)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", zap.Error(err))
		}
	}
}

// renderChanged renders a changed file unless the watch has stopped.
// Debounced calls can fire after watch returns.
func renderChanged(ctx context.Context, dec *song.Decoder, path string, w io.Writer) {
	if ctx.Err() != nil {
		return
	}
	if err := renderFile(ctx, dec, path, w); err != nil {
		logger.Warn("could not render", zap.String("path", path), zap.Error(err))
	}
}

func renderFile(ctx context.Context, dec *song.Decoder, path string, w io.Writer) error {
	urls, err := gatherURLs([]string{path})
	if err != nil {
		return err
	}
	for _, url := range urls {
		c, err := dec.DecodeCollection(ctx, url)
		if err != nil {
			return err
		}
		writeCollection(w, c, false)
	}
	return nil
}
