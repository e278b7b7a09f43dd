package main

import (
	"github.com/volleyhttp/volley/internal/cli"
)

func main() {
	cli.Execute()
}
