package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/rovshanmuradov/xau-dashboard/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	app := cli.NewApp()
	app.SetFlags(flag.CommandLine)
	app.Register(commander)

	flag.Parse()
	app.MarkSeed(flag.CommandLine)
	os.Exit(int(commander.Execute(context.Background())))
}
