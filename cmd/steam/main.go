// Command steam resolves water and steam states from reference tables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/steam/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
