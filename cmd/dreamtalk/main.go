package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/cli/migrate"
	"github.com/dreamtalk-inc/dreamtalk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dreamtalk",
		Short: "DreamTalk - voice memo backend",
		Long:  `DreamTalk is the API server behind the voice memo app: Google sign-in, Stripe billing, and recordings with automatic transcripts.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
