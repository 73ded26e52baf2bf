package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	svnlook "github.com/kfsone/svnlook-go/lib"
)

func newChangedCmd() *cobra.Command {
	var revision int

	cmd := &cobra.Command{
		Use:   "changed <repository>",
		Short: "List the paths changed by one revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _, err := openRepos(args[0])
			if err != nil {
				return err
			}

			it, err := repos.Changed(revision)
			if err != nil {
				return err
			}
			defer it.Close()

			return emitChanges(it, revision)
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to inspect")
	_ = cmd.MarkFlagRequired("revision")

	return cmd
}

func newInfoCmd() *cobra.Command {
	var revision int

	cmd := &cobra.Command{
		Use:   "info <repository>",
		Short: "Show the committer, date and log message of one revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _, err := openRepos(args[0])
			if err != nil {
				return err
			}

			info, err := repos.Info(revision)
			if err != nil {
				return err
			}

			if asYaml {
				return writeYaml(os.Stdout, newRevisionRecord(info))
			}
			printInfo(info)
			return nil
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to inspect")
	_ = cmd.MarkFlagRequired("revision")

	return cmd
}

func newDiffCmd() *cobra.Command {
	var (
		revision      int
		noDiffDeleted bool
		noDiffAdded   bool
		diffCopyFrom  bool
		ignoreProps   bool
		propsOnly     bool
		contextLines  int
	)

	cmd := &cobra.Command{
		Use:   "diff <repository>",
		Short: "Stream the raw diff of one revision to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _, err := openRepos(args[0])
			if err != nil {
				return err
			}

			builder := repos.Diff(revision)
			if noDiffDeleted {
				builder.NoDiffDeleted()
			}
			if noDiffAdded {
				builder.NoDiffAdded()
			}
			if diffCopyFrom {
				builder.DiffCopyFrom()
			}
			if ignoreProps {
				builder.IgnoreProperties()
			}
			if propsOnly {
				builder.PropertiesOnly()
			}
			if contextLines >= 0 {
				builder.ContextLines(contextLines)
			}

			stream, err := builder.Spawn()
			if err != nil {
				return err
			}
			defer stream.Close()

			// Raw passthrough: no parsing, just bytes. A failing exit
			// surfaces through the copy as the stream's final error.
			_, err = io.Copy(os.Stdout, stream)
			return err
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to diff")
	_ = cmd.MarkFlagRequired("revision")
	cmd.Flags().BoolVar(&noDiffDeleted, "no-diff-deleted", false, "skip diffs of deleted files")
	cmd.Flags().BoolVar(&noDiffAdded, "no-diff-added", false, "skip diffs of added files")
	cmd.Flags().BoolVar(&diffCopyFrom, "diff-copy-from", false, "diff copies against their source")
	cmd.Flags().BoolVar(&ignoreProps, "ignore-properties", false, "exclude property changes")
	cmd.Flags().BoolVar(&propsOnly, "properties-only", false, "show only property changes")
	cmd.Flags().IntVar(&contextLines, "context", -1, "context lines around each hunk")

	return cmd
}

func newCatCmd() *cobra.Command {
	var revision int

	cmd := &cobra.Command{
		Use:   "cat <repository> <path>",
		Short: "Stream one file's contents at a revision to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, _, err := openRepos(args[0])
			if err != nil {
				return err
			}

			stream, err := repos.Cat(revision, args[1])
			if err != nil {
				return err
			}
			defer stream.Close()

			_, err = io.Copy(os.Stdout, stream)
			return err
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision to read at")
	_ = cmd.MarkFlagRequired("revision")

	return cmd
}

func newReplayCmd() *cobra.Command {
	var revision int

	cmd := &cobra.Command{
		Use:   "replay <capture-file>",
		Short: "Parse change records from a captured 'svnlook changed' output file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capture, err := svnlook.OpenCapture(args[0])
			if err != nil {
				return err
			}
			defer capture.Close()
			Log("mapped %s: %d bytes", capture.Path, len(capture.Data))

			it := capture.Changed()
			defer it.Close()

			return emitChanges(it, revision)
		},
	}

	cmd.Flags().IntVarP(&revision, "revision", "r", 0, "revision number to label the records with")

	return cmd
}
