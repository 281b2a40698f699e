package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"socialhub/internal/pkg/mediafs"
	"socialhub/internal/pkg/validator"
)

type lsOptions struct {
	stories bool
	reverse bool
	offset  int
	limit   int
}

func newLsCommand(fs afero.Fs, opts *options) *cobra.Command {
	ls := &lsOptions{}
	cmd := &cobra.Command{
		Use:   "ls <user>",
		Short: "List a user's media, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(cmd, fs, opts, ls, args[0])
		},
	}
	cmd.Flags().BoolVar(&ls.stories, "stories", false, "list stories instead of permanent media")
	cmd.Flags().BoolVar(&ls.reverse, "reverse", false, "oldest first")
	cmd.Flags().IntVar(&ls.offset, "offset", 0, "entries to skip")
	cmd.Flags().IntVar(&ls.limit, "limit", -1, "maximum entries, negative for all")
	return cmd
}

func runLs(cmd *cobra.Command, fs afero.Fs, opts *options, ls *lsOptions, name string) error {
	if !validator.IsUserName(name) {
		return fmt.Errorf("invalid user name %q", name)
	}

	dir := opts.layout().MediaDir(name)
	if ls.stories {
		dir = opts.layout().StoriesDir(name)
	}

	entries, err := mediafs.List(fs, dir, ls.reverse)
	if err != nil {
		return err
	}
	entries = mediafs.Paginate(entries, ls.offset, ls.limit)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	now := time.Now()
	for _, e := range entries {
		age := "unknown"
		if !e.ModTime.IsZero() {
			age = humanize.RelTime(e.ModTime, now, "ago", "from now")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, humanize.Bytes(uint64(e.Size)), age)
	}
	return w.Flush()
}
