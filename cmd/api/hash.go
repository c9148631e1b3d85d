package main

import (
	"fmt"

	"technotes/internal/service"

	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash of password (default \"admin\")",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := "admin"
		if len(args) > 0 {
			password = args[0]
		}
		h, err := service.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), h)
		return nil
	},
}
