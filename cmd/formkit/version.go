package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version and build information for the formkit CLI.`,
		Run: func(cmd *cobra.Command, args []string) {
			v := buildVersion()
			if short {
				fmt.Println(v)
				return
			}

			fmt.Printf("formkit %s (commit %s, built %s)\n", v, commit, date)
			fmt.Printf("%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}

// buildVersion prefers the ldflags-injected version and falls back to the
// module version the toolchain stamps into go-install builds.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}
