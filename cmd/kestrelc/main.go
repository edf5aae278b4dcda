package main

import (
	"os"

	"github.com/kestrel-lang/kestrelc/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Args[1:]))
}
