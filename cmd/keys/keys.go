package keys

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/config"
	"github.com/altkdf/schnorr-canister/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keys",
		newList(),
		newProvision(),
	)
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the provisioned root keys",
		Run: func(cmd *cobra.Command, args []string) {
			runList()
		},
	}
}

func newProvision() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Provisions missing root keys",
		Long: `Provisions missing root keys.
Generates a fresh random seed for every configured key name and algorithm
that has no seed yet. Existing seeds are never touched.`,
		Run: func(cmd *cobra.Command, args []string) {
			runProvision()
		},
	}
}

func runList() {
	s, ctx, cancel := mustInit()
	defer cancel()

	keyIDs, err := s.Keyring.ListKeys(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list keys")
	}

	for _, keyID := range keyIDs {
		fmt.Println(keyID.String())
	}
}

func runProvision() {
	s, ctx, cancel := mustInit()
	defer cancel()

	if err := s.Keyring.EnsureProvisioned(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision root keys")
	}
}

func mustInit() (*api.Server, context.Context, context.CancelFunc) {
	cfg := config.DefaultServiceConfigFromEnv()

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	return s, ctx, cancel
}
