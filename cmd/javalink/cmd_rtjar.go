package main

import (
	"fmt"

	"github.com/dhamidi/javalink/classpath"
	"github.com/spf13/cobra"
)

func newRTJarCmd(flags *globalFlags) *cobra.Command {
	var javaHome string

	cmd := &cobra.Command{
		Use:   "rtjar",
		Short: "Print the path of the JDK runtime jar",
		Long: `Print the rt.jar that rt_jar: true adds to the classpath. The JDK is
taken from --java-home, java_home in javalink.yaml, $JAVA_HOME, or the
java binary on PATH, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if javaHome == "" {
				cfg, err := loadConfig(flags)
				if err != nil {
					return err
				}
				javaHome = cfg.Resolve(cfg.JavaHome)
			}
			rt, err := classpath.FindRTJar(javaHome)
			if err != nil {
				return err
			}
			fmt.Println(rt)
			return nil
		},
	}

	cmd.Flags().StringVar(&javaHome, "java-home", "", "JDK installation to use")

	return cmd
}
