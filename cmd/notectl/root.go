package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	accessToken string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notectl",
	Short: "Command line client for the notehive notes service",
	Long: `notectl talks to a running notehive server over its REST API.
Filtering, search and sorting of the note list happen locally,
the server is asked only for the full visible snapshot.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the notehive server")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "", "Access token (also read from NOTECTL_TOKEN)")
}

// token возвращает access-токен из флага или переменной окружения.
func token() string {
	if accessToken != "" {
		return accessToken
	}
	return os.Getenv("NOTECTL_TOKEN")
}
