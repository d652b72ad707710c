// Command formula evaluates arithmetic expressions or prints their parse
// trees.
//
// Expressions come from the arguments, or else one per line from the file
// named by --in or from stdin. When stdin is a terminal, formula prompts for
// expressions interactively.
package main

import (
	"io"
	"os"

	cli "github.com/urfave/cli/v2"
)

func main() {
	newApp(os.Stdin, os.Stdout).RunAndExitOnError()
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "formula",
		Usage:     "evaluate expressions or print their parse trees",
		ArgsUsage: "[expression...]",
		Reader:    stdin,
		Writer:    stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "in",
				Usage: "input file with one expression per line, - for stdin (default stdin if no args given)",
			},
			&cli.UintFlag{
				Name:    "prec",
				Aliases: []string{"p"},
				Value:   64,
				Usage:   "precision of calculations in bits",
			},
			&cli.StringSliceFlag{
				Name:  "given",
				Usage: "name=value variable definition (any number of times)",
			},
			&cli.StringFlag{
				Name:  "ops",
				Usage: "YAML operator table; print parse trees using it instead of evaluating",
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "print parse trees",
			},
			&cli.BoolFlag{
				Name:  "rpn",
				Usage: "print expressions in postfix order",
			},
			&cli.StringFlag{
				Name:  "fmt",
				Value: "%g",
				Usage: "result formatting string",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages",
			},
		},
		Action: run,
	}
}
