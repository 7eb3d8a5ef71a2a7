package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the paper bot server to be ready",
	Long: `Wait for the paper bot server to be ready.

Polls the status endpoint once a second until the server answers with
200 or the timeout runs out. Handy in scripts that start the server in
the background. A 503 keeps the wait going, that's a server still
running its migrations.

Example:
  paperbotctl wait
  paperbotctl wait --port 3000 --timeout 30`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		timeout, _ := cmd.Flags().GetInt("timeout")

		if err := waitForServer(port, time.Duration(timeout)*time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Gave up waiting: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "port the server listens on")
	waitCmd.Flags().IntP("timeout", "t", 90, "Seconds to wait before giving up")
}

func waitForServer(port int, timeout time.Duration) error {
	url := fmt.Sprintf("http://localhost:%d/status", port)
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	fmt.Println("Waiting for paperbot to be ready...")

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Println()
				fmt.Println("paperbot is ready!")
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(time.Second)
	}

	fmt.Println()
	return fmt.Errorf("no healthy answer from %s within %s", url, timeout)
}
