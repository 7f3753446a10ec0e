package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/fennmarsh/scribe/internal/state"
	"github.com/fennmarsh/scribe/pkg/cmd/root"
)

func main() {
	s, err := state.NewState()
	if err != nil {
		log.Fatal("startup failed", "err", err)
	}

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		log.Fatal("command setup failed", "err", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
