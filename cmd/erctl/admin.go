// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/erapp/internal/users/auth"
)

var adminInput auth.RegisterInput

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote an administrator account",
	Long: `create-admin is idempotent: an existing account with the same email is
promoted to admin and its password replaced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		service := auth.NewService(auth.NewUserRepository(pool), nil, logger)
		user, created, err := service.EnsureAdmin(ctx, adminInput)
		if err != nil {
			return err
		}

		verb := "Promoted"
		if created {
			verb = "Created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s administrator %s (%s)\n", verb, user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminInput.Email, "email", "", "Administrator email")
	createAdminCmd.Flags().StringVar(&adminInput.Password, "password", "", "Administrator password")
	createAdminCmd.Flags().StringVar(&adminInput.Name, "name", "Admin", "Display name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
