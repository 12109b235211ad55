package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/javalink/format"
	"github.com/dhamidi/javalink/java"
	"github.com/dhamidi/javalink/javaref"
	"github.com/spf13/cobra"
)

func newDumpCmd(flags *globalFlags) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <class|file.class>...",
		Short: "Dump the linkable members of a class",
		Long: `Dump the fields and methods a reference can point at. A class is
looked up on the configured classpath by name (java.util.Map.Entry and
java.util.Map$Entry both work); a path ending in .class is read directly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(dumpFormat, os.Stdout)
			if err != nil {
				return err
			}

			var session *javaref.Session
			defer func() {
				if session != nil {
					session.Close()
				}
			}()

			for _, arg := range args {
				var class *java.ClassSurface
				if filepath.Ext(arg) == ".class" {
					class, err = java.ClassSurfaceFromFile(arg)
					if err != nil {
						return fmt.Errorf("parse class file: %w", err)
					}
				} else {
					if session == nil {
						if _, session, err = openSession(flags); err != nil {
							return err
						}
					}
					index, err := session.Index(cmd.Context())
					if err != nil {
						return err
					}
					r := &javaref.Resolver{Classes: index}
					class, err = r.FindClass(arg, javaref.DefaultImports)
					if err != nil {
						return err
					}
					if class == nil {
						return fmt.Errorf("class not found: %s", arg)
					}
				}

				if err := enc.Encode(class); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
