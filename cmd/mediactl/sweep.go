package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"socialhub/internal/pkg/mediafs"
)

func newSweepCommand(fs afero.Fs, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete stories older than the retention window",
		Long: fmt.Sprintf(`Sweep every {data-dir}/*/stories directory once, deleting story
files last modified more than %s ago. Files whose metadata cannot be read
are deleted too.`, mediafs.RetentionWindow),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, fs, opts)
		},
	}
}

func runSweep(cmd *cobra.Command, fs afero.Fs, opts *options) error {
	dirs, err := afero.Glob(fs, filepath.Join(opts.dataDir, "*", "stories"))
	if err != nil {
		return fmt.Errorf("find story directories: %w", err)
	}

	sweeper := mediafs.NewSweeper(fs, opts.logger(cmd))
	out := cmd.OutOrStdout()

	var (
		deleted int
		errs    []error
	)
	for _, dir := range dirs {
		if ok, err := afero.IsDir(fs, dir); err != nil || !ok {
			continue
		}
		res, err := sweeper.Sweep(dir)
		deleted += len(res.Deleted)
		for _, path := range res.Deleted {
			fmt.Fprintf(out, "deleted %s\n", path)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dir, err))
		}
	}

	fmt.Fprintf(out, "swept %s directories, deleted %s files\n",
		humanize.Comma(int64(len(dirs))), humanize.Comma(int64(deleted)))
	return errors.Join(errs...)
}
