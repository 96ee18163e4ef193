package main

import (
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/fidra-app/fidra/search"
)

var (
	cli struct {
		Query []string `help:"Boolean query to inspect." arg:""`
	}
)

func main() {
	_ = kong.Parse(&cli)

	tokens, rpn := search.Explain(strings.Join(cli.Query, " "))

	repr.Println(tokens)
	repr.Println(rpn)
}
