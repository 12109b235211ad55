package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/javalink/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var strict, watch bool

	cmd := &cobra.Command{
		Use:   "check [file.rst]...",
		Short: "Check the references of reStructuredText documents",
		Long: `Process the javaimport directives and javaref roles of each document
in order and print a warning for every import or reference that does not
resolve. Without arguments every .rst file below srcdir is checked.

The exit status is 1 when the classpath cannot be read, or with --strict
when there are warnings. With --watch documents are checked again
whenever they change, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(flags)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ws := workspace.New(session.Options().SrcDir, session)

			var reports []*workspace.Report
			if len(args) == 0 {
				reports, err = ws.ScanAll(ctx)
			} else {
				for _, path := range args {
					report, scanErr := ws.ScanFile(ctx, path)
					if report != nil {
						reports = append(reports, report)
					}
					if scanErr != nil {
						err = scanErr
						break
					}
				}
			}

			warnings := printReports(reports)
			for _, w := range session.RegistryWarnings() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			if err != nil {
				return err
			}

			if watch {
				return watchWorkspace(ctx, ws)
			}
			if strict && warnings > 0 {
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when there are warnings")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "check documents again when they change")

	return cmd
}

func printReports(reports []*workspace.Report) int {
	n := 0
	for _, r := range reports {
		for _, w := range r.Warnings {
			fmt.Fprintln(os.Stderr, w)
			n++
		}
	}
	return n
}

func watchWorkspace(ctx context.Context, ws *workspace.Workspace) error {
	watcher, err := workspace.NewWatcher(ws, func(report *workspace.Report, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			return
		}
		if n := printReports([]*workspace.Report{report}); n == 0 {
			fmt.Fprintf(os.Stderr, "%s: ok\n", report.Path)
		}
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s\n", ws.RootDir())
	<-ctx.Done()
	watcher.Stop()
	return nil
}
