package main

import (
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"socialhub/internal/config"
	"socialhub/internal/domain/user"
)

type options struct {
	dataDir string
	verbose bool
}

func (o *options) layout() user.Layout {
	return user.NewLayout(o.dataDir)
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newRootCommand returns the root command with all subcommands attached.
func newRootCommand(fs afero.Fs) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "mediactl",
		Short: "Inspect and maintain the socialhub media store.",
		Long: `mediactl works directly on the media data directory.

Examples:
  # Delete expired stories of every user
  mediactl sweep --data-dir /srv/socialhub/data

  # Show alice's stories, oldest first
  mediactl ls alice --stories --reverse`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", config.DataDirectoryFromEnv(), "media data directory (DATADIRECTORY)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every file operation")

	root.AddCommand(newSweepCommand(fs, opts))
	root.AddCommand(newLsCommand(fs, opts))
	return root
}
