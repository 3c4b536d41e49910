// Command lvfst builds and queries finite-state transducer indexes.
//
// Usage:
//
//	lvfst build set words.txt words.fst
//	lvfst fuzzy words.fst wrold -d 2
//	lvfst grep words.fst 'wor[a-z]+'
//
// Run lvfst --help for every command.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/lvfst/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
