package main

import (
	"fmt"
	"strings"

	"github.com/G-Node/sieve/sieve/field"
	"github.com/spf13/cobra"
)

func hashCmd() *cobra.Command {
	var opts field.PasswordOptions
	var list bool

	cmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the digest of a password",
		Long: fmt.Sprintf(`Print the hex digest of salt + password, as stored for accounts.

Algorithms: %s.`, strings.Join(field.Algorithms(), ", ")),
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range field.Algorithms() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			digest, err := field.NewPasswordField(args[0], opts).Encrypt()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Salt, "salt", "s", "", "Salt prepended to the password")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", field.DefaultAlgorithm, "Digest algorithm")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the supported algorithms")
	return cmd
}
