package main

import (
	_ "embed"

	"github.com/ForkFiesta/note-graph-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
