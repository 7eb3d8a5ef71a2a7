package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/server/middleware"
)

// tokenGenerateCmd represents the token > generate command
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an API token",
	Long: `
Generate a signed API token

Use this command to generate a bearer token for the mutating API endpoints.
The token is signed with the PAPERBOT_API_SECRET the server was started with.

Example:

$ export TOKEN="$(paperbotctl token generate --subject ci --ttl 1h)"
$ curl -H "Authorization: Bearer $TOKEN" -X POST localhost:8000/fetch
`,
	Run: func(cmd *cobra.Command, args []string) {
		secret := os.Getenv("PAPERBOT_API_SECRET")
		if secret == "" {
			fmt.Fprintln(os.Stderr, "PAPERBOT_API_SECRET environment variable is required")
			os.Exit(1)
		}

		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := middleware.GenerateToken(secret, subject, ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s", token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)
	tokenGenerateCmd.Flags().StringP("subject", "s", "cli", "Token subject claim")
	tokenGenerateCmd.Flags().Duration("ttl", 24*time.Hour, "Token time to live")
}
