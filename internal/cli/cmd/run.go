package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/clipboard"
	"github.com/clipvault/clipvault/internal/storage"
)

// newRunCmd creates the run command, which starts the monitor loop in the
// foreground until interrupted.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard monitor in the foreground",
		Long: `Run the clipboard history engine: poll the system clipboard, classify
and store changes, and persist the history in the background. Stops on
SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			flusher := storage.NewFlusher(eng.store, eng.index, eng.flushInterval(), logger)
			flusherDone := make(chan struct{})
			go func() {
				defer close(flusherDone)
				flusher.Run(ctx)
			}()

			monitor := clipboard.NewMonitor(eng.provider, eng.clip, eng.store, eng.marker, logger)
			monitor.Start(ctx)

			logger.Info("clipvault running",
				zap.Int("items", eng.store.Len()),
				zap.Int64("total_bytes", eng.store.TotalBytes()))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			logger.Info("shutting down")
			monitor.Stop()
			cancel()
			<-flusherDone
			return nil
		},
	}
}
