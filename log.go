package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	svnlook "github.com/kfsone/svnlook-go/lib"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <repository>",
		Short: "Walk the revision window printing each commit and its changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runLog,
	}
}

func runLog(cmd *cobra.Command, args []string) error {
	repos, cfg, err := openRepos(args[0])
	if err != nil {
		return err
	}

	head, err := repos.Youngest()
	if err != nil {
		return fmt.Errorf("youngest: %w", err)
	}
	Log("head revision: r%d", head)

	first, last := cfg.Start, cfg.Stop
	if first < 1 {
		first = 1
	}
	if last < 0 || last > head {
		last = head
	}

	for rev := first; rev <= last; rev++ {
		if err := logRevision(repos, rev); err != nil {
			return fmt.Errorf("r%d: %w", rev, err)
		}
	}

	Info("walked %d revision(s)", last-first+1)

	return nil
}

// logRevision reports one revision: its info header and every change
// record, each revision's subprocesses spawned and reaped in turn.
func logRevision(repos *svnlook.Repos, rev int) error {
	info, err := repos.Info(rev)
	if err != nil {
		return err
	}

	it, err := repos.Changed(rev)
	if err != nil {
		return err
	}
	defer it.Close()

	if asYaml {
		record := newRevisionRecord(info)
		for {
			change, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			record.Changes = append(record.Changes, newChangeRecord(change))
		}
		return writeYaml(os.Stdout, record)
	}

	printInfo(info)
	for {
		change, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		printChange(change)
	}

	return nil
}
