package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/javalink/java"
	"github.com/spf13/cobra"
)

func newPackagesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the packages documented by the configured docroots",
		Long: `Fetch the package-list (or element-list) of every docroot and print
each package with the link base and javadoc version it resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(flags)
			if err != nil {
				return err
			}
			defer session.Close()

			registry := session.Registry(cmd.Context())
			for _, w := range session.RegistryWarnings() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			for _, name := range registry.Packages() {
				entry, _ := registry.Lookup(java.ParsePackage(name))
				fmt.Printf("%s\t%s\t%d\n", name, entry.Base, entry.Version)
			}
			return nil
		},
	}
}
