package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/altkdf/schnorr-canister/cmd/env"
	"github.com/altkdf/schnorr-canister/cmd/keys"
	"github.com/altkdf/schnorr-canister/cmd/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schnorr-canister",
		Short: "Threshold-style Schnorr key derivation and signing service",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.AddCommand(
		env.New(),
		keys.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute root command")
	}
}
