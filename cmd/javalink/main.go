package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

type globalFlags struct {
	config    string
	verbosity int
	logFile   string
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "javalink",
		Short:         "Link Javadoc references in reStructuredText documentation",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if flags.logFile != "" {
				path = &flags.logFile
			}
			commonlog.Configure(flags.verbosity, path)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "configuration file (default ./javalink.yaml)")
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newResolveCmd(&flags))
	rootCmd.AddCommand(newClasspathCmd(&flags))
	rootCmd.AddCommand(newDumpCmd(&flags))
	rootCmd.AddCommand(newPackagesCmd(&flags))
	rootCmd.AddCommand(newRTJarCmd(&flags))
	rootCmd.AddCommand(newCheckCmd(&flags))
	rootCmd.AddCommand(newLSPCmd(&flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
