package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/db"
	"github.com/arxivtools/paperbot/pkg/digest"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// digestCmd represents the digest command
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate a Markdown digest of stored papers",
	Long: `Generate a Markdown digest of the stored papers, grouped by publication
date with the newest first.

The digest is written to stdout unless --out is given. With --exclude, papers
whose arXiv ids already appear in the given Markdown file are skipped, so a
digest can be appended to an existing reading list without duplicates.

Example:
  paperbotctl digest
  paperbotctl digest --out digest.md --limit 50
  paperbotctl digest --exclude README.md`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		title, _ := cmd.Flags().GetString("title")
		limit, _ := cmd.Flags().GetInt("limit")
		exclude, _ := cmd.Flags().GetString("exclude")

		if err := runDigest(out, title, limit, exclude); err != nil {
			fmt.Fprintf(os.Stderr, "Digest failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	digestCmd.Flags().StringP("title", "t", "", "Digest title (default: configured digest_title)")
	digestCmd.Flags().IntP("limit", "n", 0, "Maximum papers to include (default: all)")
	digestCmd.Flags().StringP("exclude", "x", "", "Markdown file whose papers are skipped")
}

func runDigest(out, title string, limit int, exclude string) error {
	if title == "" {
		title = config.Get().DigestTitle
	}

	var excluded map[string]bool
	if exclude != "" {
		data, err := os.ReadFile(exclude)
		if err != nil {
			return fmt.Errorf("failed to read exclude file: %w", err)
		}
		excluded = make(map[string]bool)
		for _, id := range digest.ExtractArxivIDs(data) {
			excluded[id] = true
		}
	}

	database, err := db.Connect("")
	if err != nil {
		return err
	}

	papers, err := gormstore.NewPapersStore(database).ListPapers("", limit, 0)
	if err != nil {
		return fmt.Errorf("failed to list papers: %w", err)
	}

	md := digest.Generate(papers, digest.Options{
		Title:   title,
		Exclude: excluded,
	})

	if out == "" {
		fmt.Print(md)
		return nil
	}

	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	fmt.Printf("Digest written to %s\n", out)
	return nil
}
