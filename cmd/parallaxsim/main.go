// Command parallaxsim replays, validates and views parallax pages.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/parallax/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
