package main

// svnlook-go drives the svnlook command-line tool against a Subversion
// repository and presents its output as typed records: revision info,
// per-revision change lists, and raw diff/cat streams.
//
// Use the optional yaml config file to pin the svnlook executable, the
// stderr policy, and the revision window walked by the 'log' command:
//
//	# svnlook executable to invoke, default "svnlook"
//	svnlook: /opt/svn/bin/svnlook
//
//	# what to do with the tool's stderr: suppress or inherit
//	stderr: inherit
//
//	# revision window for 'log'
//	start-revision: 1
//	stop-revision: 250

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	svnlook "github.com/kfsone/svnlook-go/lib"
)

var (
	configFile  string
	svnlookPath string
	stderrMode  string
	verbose     bool
	quiet       bool
	asYaml      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "svnlook-go",
		Short:         "Inspect Subversion repositories by driving svnlook",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("-quiet and -verbose are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to yaml config file")
	pf.StringVar(&svnlookPath, "svnlook", "", "svnlook executable to invoke")
	pf.StringVar(&stderrMode, "stderr", "", "stderr policy: suppress or inherit")
	pf.BoolVarP(&verbose, "verbose", "v", false, "more output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	pf.BoolVar(&asYaml, "yaml", false, "emit records as yaml")

	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newChangedCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newCatCmd())
	cmd.AddCommand(newReplayCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		os.Exit(1)
	}
}

// Log prints a message if -verbose was specified.
func Log(format string, args ...any) {
	if verbose {
		s := fmt.Sprintf("-- "+format, args...)
		s = strings.ReplaceAll(s, "\r", "<cr>")
		s = strings.ReplaceAll(s, "\n", "<lf>")
		fmt.Println(s)
	}
}

// Info prints a message if -quiet was not specified.
func Info(format string, args ...any) {
	if !quiet {
		s := fmt.Sprintf("-- "+format, args...)
		s = strings.ReplaceAll(s, "\r", "<cr>")
		s = strings.ReplaceAll(s, "\n", "<lf>")
		fmt.Println(s)
	}
}

// openRepos builds a Repos for the given repository path from the config
// file, with command-line flags taking precedence.
func openRepos(path string) (*svnlook.Repos, *Config, error) {
	cfg, err := NewConfig(configFile)
	if err != nil {
		return nil, nil, err
	}

	repos := svnlook.NewRepos(path)
	if cfg.Svnlook != "" {
		repos.Executable = cfg.Svnlook
	}
	if svnlookPath != "" {
		repos.Executable = svnlookPath
	}

	mode := cfg.Stderr
	if stderrMode != "" {
		mode = stderrMode
	}
	switch mode {
	case "", "suppress":
		repos.Stderr = svnlook.StderrSuppress
	case "inherit":
		repos.Stderr = svnlook.StderrInherit
	default:
		return nil, nil, fmt.Errorf("unknown stderr policy: %s", mode)
	}

	return repos, cfg, nil
}
