package main

import (
	"github.com/dhamidi/javalink/config"
	"github.com/dhamidi/javalink/javaref"
	"github.com/dhamidi/javalink/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Serve LSP over stdio. Open documents are checked on every change;
warnings are published as diagnostics and resolved roles are offered as
document links and hovers. The configuration is read from --config or
from javalink.yaml in the workspace root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, func(rootDir string) (*workspace.Workspace, error) {
				var cfg *config.Config
				var err error
				if flags.config != "" {
					cfg, err = config.Load(flags.config)
				} else {
					cfg, err = config.LoadDir(rootDir)
				}
				if err != nil {
					return nil, err
				}
				opts, err := cfg.SessionOptions()
				if err != nil {
					return nil, err
				}
				return workspace.New(opts.SrcDir, javaref.NewSession(opts)), nil
			})
			return server.RunStdio()
		},
	}
}
