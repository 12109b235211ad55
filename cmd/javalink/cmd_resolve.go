package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/javalink/javaref"
	"github.com/spf13/cobra"
)

// commandLineDoc is the document name imports given with -i are recorded under.
const commandLineDoc = "<command-line>"

func newResolveCmd(flags *globalFlags) *cobra.Command {
	var imports []string

	cmd := &cobra.Command{
		Use:   "resolve <ref>...",
		Short: "Resolve references and print their title and link",
		Long: `Resolve each reference the way a :javaref: role would and print
one line per reference: the title and the link, separated by a tab.
References that do not resolve are printed unlinked with a warning on
stderr.

Examples:
  javalink resolve java.util.List#add(int,Object)
  javalink resolve -i java.util.* 'Map.Entry#getKey'
  javalink resolve 'the list <java.util.List>'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(flags)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx := cmd.Context()
			for _, text := range imports {
				if err := session.Import(ctx, commandLineDoc, text); err != nil {
					if !javaref.IsRecoverable(err) {
						return err
					}
					fmt.Fprintf(os.Stderr, "warning: %s\n", err)
				}
			}

			srcdir := session.Options().SrcDir
			for _, text := range args {
				link, err := session.Render(ctx, commandLineDoc, srcdir, text)
				if err != nil {
					return err
				}
				for _, w := range link.Warnings {
					fmt.Fprintf(os.Stderr, "warning: %s\n", w)
				}
				fmt.Printf("%s\t%s\n", link.Title, link.URL)
			}
			for _, w := range session.RegistryWarnings() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&imports, "import", "i", nil, "import a class or package.* before resolving")

	return cmd
}
