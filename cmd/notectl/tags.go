package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notehive/pkg/apiclient"
	"notehive/pkg/noteview"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List distinct tags across all visible notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(serverURL, apiclient.WithAccessToken(token()))

		notes, err := client.ListNotes(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing notes: %v\n", err)
			os.Exit(1)
		}

		for _, tag := range noteview.Tags(notes) {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
