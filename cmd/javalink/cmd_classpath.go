package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhamidi/javalink/classpath"
	"github.com/spf13/cobra"
)

func newClasspathCmd(flags *globalFlags) *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "Print the expanded classpath",
		Long: `Print the classpath from javalink.yaml after expansion, one entry
per line with its kind: "dir" for class directories and "jar" for
archives. Wildcard entries (lib/*) are replaced by the archives they
match, and the JDK rt.jar comes first when rt_jar is set.

Examples:
  javalink classpath
  javalink classpath -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			paths, err := cfg.ClasspathEntries()
			if err != nil {
				return err
			}
			entries, err := classpath.Expand(cmd.Context(), paths)
			if err != nil {
				return err
			}

			switch outFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "line":
				for _, e := range entries {
					fmt.Printf("%s\t%s\n", e.Kind, e.Path)
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", outFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
