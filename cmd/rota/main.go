// Package main provides the entry point for the rota CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrz1836/rota/internal/cli"
	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/signal"
)

// Build information set via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}

	if err := cli.Execute(h.Context(), info); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", rotaerrors.UserMessage(err))
		if action := rotaerrors.Actionable(err); action != "" {
			fmt.Fprintln(os.Stderr, action)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
}
