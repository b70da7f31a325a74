package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notehive/pkg/apiclient"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print an access token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(serverURL)

		tokens, err := client.Login(context.Background(), apiclient.Credentials{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Logged in as %s\n", tokens.Username)
		fmt.Printf("export NOTECTL_TOKEN=%s\n", tokens.AccessToken)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
