package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"image-browser/internal/browse"
	"image-browser/internal/catalog"
	"image-browser/internal/history"
	"image-browser/internal/logging"
	"image-browser/internal/startup"
	"image-browser/internal/thumbs"
)

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Open a directory and follow it for changes",
	Long: `browse opens a directory as a live session: it scans the images,
materializes thumbnails into the cache, watches the directory for
external changes, and logs every collection event until interrupted.

With METRICS_ENABLED=true a Prometheus endpoint is served on
METRICS_PORT for the duration of the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		dir := config.BrowseDir
		if len(args) == 1 {
			dir = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mat := thumbs.NewMaterializer(thumbs.Options{
			Enabled:  config.ThumbnailsEnabled,
			CacheDir: config.ThumbnailDir,
			Width:    config.ThumbnailSize,
			Height:   config.ThumbnailSize,
		})
		session := browse.NewSession(catalog.ScanOptions{
			Extensions: config.Extensions,
			Recursive:  config.Recursive,
		}, mat)

		if config.HistoryEnabled {
			journal, err := history.Open(ctx, config.HistoryPath)
			if err != nil {
				logging.Warn("rename history unavailable: %v", err)
			} else {
				defer journal.Close()
				startup.LogHistoryInit(config.HistoryPath)
				session.SetJournal(journal)
			}
		}

		if config.MetricsEnabled {
			go serveMetrics(config.MetricsPort)
		}

		startup.LogScanStarted(dir, config.Recursive)
		start := time.Now()
		select {
		case <-session.OpenFolder(ctx, dir):
		case <-ctx.Done():
			return ctx.Err()
		}
		if session.Dir() != dir {
			return fmt.Errorf("failed to open %s", dir)
		}
		startup.LogScanComplete(session.Len(), time.Since(start))

		go session.Watch(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info("browse session ended")
				return nil
			case change := <-session.Changes():
				logChange(session, change)
			}
		}
	},
}

func logChange(session *browse.Session, change browse.Change) {
	switch change.Kind {
	case browse.ChangeCollectionReplaced:
		logging.Info("collection replaced: %d entries in %s", session.Len(), change.Path)
	case browse.ChangeCursorMoved:
		logging.Debug("cursor moved to id %d", change.ID)
	case browse.ChangeEntryRemoved:
		logging.Info("entry %d removed (%s)", change.ID, change.Path)
	case browse.ChangeEntryRenamed:
		logging.Info("entry %d renamed to %s", change.ID, change.Path)
	case browse.ChangeBatchFinished:
		logging.Info("rename batch finished")
	case browse.ChangeScanFailed:
		logging.Warn("scan of %s failed: %v", change.Path, change.Err)
	}
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logging.Info("metrics listening on :%s/metrics", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logging.Error("metrics server: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
