package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"picktime/internal/di"
	"picktime/internal/structures"
)

type ServeCmd struct{}

func (c *ServeCmd) Run(flags *structures.CliFlags) error {
	_, err := di.InitApp(flags)
	return err
}

type ReportCmd struct {
	Day string `short:"d" help:"Only report this day (YYYY-MM-DD)"`
}

func (c *ReportCmd) Run(flags *structures.CliFlags) error {
	cmd, err := di.InitReport(flags)
	if err != nil {
		return err
	}
	return cmd.Run(os.Stdout, c.Day)
}

var CLI struct {
	Config string `short:"c" help:"Configuration file path" default:"config.yaml" type:"path"`
	Debug  bool   `short:"v" help:"Also log to the console"`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Run the toggle API and the shift monitor"`
	Report ReportCmd `cmd:"" help:"Print the stored report and exit"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("picktime"),
		kong.Description("Downtime tracker for assembly line stations."),
		kong.UsageOnError(),
	)

	flags := &structures.CliFlags{ConfigPath: CLI.Config, DebugMode: CLI.Debug}
	if err := ctx.Run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "picktime: %s\n", err)
		os.Exit(1)
	}
}
