// File: cmd/generate.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/Volas171/handlegen/internal/generator"
	"github.com/Volas171/handlegen/internal/identity"
	"github.com/Volas171/handlegen/internal/ledger"
	"github.com/Volas171/handlegen/internal/observability"
	"github.com/Volas171/handlegen/internal/title"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Derive handles from random article titles and append them to the ledger",
		Long: `generate fetches a random article title, strips it down to letters,
truncates it and appends a numeric suffix. Each handle is written together
with a freshly generated password to the append-only ledger file, and the
handle is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			src, err := title.NewSource(cfg, logger)
			if err != nil {
				return err
			}
			gen, err := identity.NewGenerator(cfg.Identity)
			if err != nil {
				return err
			}
			led := ledger.New(cfg.Ledger.Path, logger)
			svc := generator.New(src, gen, led, cfg.Title.MaxAttempts, logger)

			ids, err := svc.GenerateN(cmd.Context(), count)
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id.Username())
			}
			if err != nil {
				return err
			}

			logger.Info("Ledger updated", zap.String("path", led.Path()), zap.Int("count", len(ids)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of handles to generate")
	return cmd
}
