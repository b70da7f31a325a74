package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notehive/pkg/apiclient"
	"notehive/pkg/noteview"
)

var (
	listFilter string
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes with local filtering and search",
	Long: `List fetches the full visible snapshot of notes from the server and
applies the filter, search and ordering locally. The filter selector is
"all", "pinned", "archived" or "tag:<value>"; anything else falls back
to "all".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := apiclient.New(serverURL, apiclient.WithAccessToken(token()))

		notes, err := client.ListNotes(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing notes: %v\n", err)
			os.Exit(1)
		}

		projected := noteview.Project(notes, noteview.ParseFilter(listFilter), listSearch)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(projected); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, note := range projected {
			marker := " "
			if note.Pinned {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, note.ID, note.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFilter, "filter", "all", `Filter selector: all, pinned, archived or "tag:<value>"`)
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive substring search in title and content")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
