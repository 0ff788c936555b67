package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/altkdf/schnorr-canister/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective server configuration",
		Run: func(cmd *cobra.Command, args []string) {
			runEnv()
		},
	}
}

func runEnv() {
	cfg := config.DefaultServiceConfigFromEnv()

	c, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config")
	}

	fmt.Println(string(c))
}
