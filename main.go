package main

import (
	"fmt"
	"os"

	"github.com/gqldoc/gqldoc/cmd"
	"github.com/gqldoc/gqldoc/doc"
	"github.com/gqldoc/gqldoc/search"
)

var cli *cmd.CommandLine

func init() {
	cli = cmd.NewCLI()
	cli.AllowPlugins("gqldoc-gen-")

	// Register Markdown generator
	cli.RegisterGenerator(new(doc.Generator),
		"md_out",
		"md_opt",
		"Generate Markdown documentation.")

	// Register search manifest generator
	cli.RegisterGenerator(new(search.Generator),
		"search_out",
		"search_opt",
		"Generate a client side search manifest.")
}

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
