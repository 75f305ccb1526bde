// Package cli holds the fyyur command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// VersionInfo is stamped at build time.
type VersionInfo struct {
	Version string
	Commit  string
}

func (v VersionInfo) String() string { return fmt.Sprintf("%s.%s", v.Version, v.Commit) }

// NewRootCommand returns the root command.  Before any subcommand runs,
// variables from the --env-file are loaded; variables already set in the
// environment win, and a missing file is ignored.
func NewRootCommand(info VersionInfo) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "fyyur",
		Short:         "Fyyur music venue and artist booking site",
		Long:          "Fyyur lists venues and artists and books shows between them.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	cmd.Version = info.String()
	return cmd
}

func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// NewVersionCommand prints the build version.
func NewVersionCommand(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fyyur", info.String())
		},
	}
}
