package main

import (
	"fmt"
	"os"

	"github.com/iliyamo/fyyur/cmd/server/cli"
)

var (
	version = "0.1.0-dev"
	commit  = "main"
)

func main() {
	info := cli.VersionInfo{Version: version, Commit: commit}
	root := cli.NewRootCommand(info)

	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewConsumeCommand())
	root.AddCommand(cli.NewVersionCommand(info))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
