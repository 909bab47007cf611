// File: cmd/password.go
package cmd

import (
	"fmt"

	"github.com/Volas171/handlegen/internal/identity"
	"github.com/spf13/cobra"
)

func newPasswordCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Print a random alphanumeric password without touching the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			idCfg := cfg.Identity
			if cmd.Flags().Changed("length") {
				idCfg.PasswordLength = length
			}
			gen, err := identity.NewGenerator(idCfg)
			if err != nil {
				return err
			}
			pw, err := gen.Password()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "password length (defaults to identity.password_length)")
	return cmd
}
