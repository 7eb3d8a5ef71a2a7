//go:build ignore

// Seeds the papers table with synthetic rows for query and dashboard testing.
//
//	go run example.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

func main() {
	const count = 10000

	query_str := "INSERT INTO papers (title, authors, summary, published, arxiv_url, pdf_url, arxiv_id) VALUES \n"

	base := time.Now().UTC()
	for i := 0; i < count; i++ {
		arxivID := fmt.Sprintf("2408.%05dv1", i)
		published := base.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)

		query_str += fmt.Sprintf(
			"('Synthetic Paper %d', 'A. Author, B. Author', 'Synthetic abstract %d for load testing.', '%s', 'http://arxiv.org/abs/%s', 'http://arxiv.org/pdf/%s', '%s'), ",
			i, i, published, arxivID, arxivID, arxivID,
		)
	}

	query_str = query_str[:len(query_str)-2]
	query_str += " ON CONFLICT DO NOTHING"

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	result, err := db.Exec(query_str)
	if err != nil {
		log.Fatal(err)
	}

	rows, _ := result.RowsAffected()
	fmt.Printf("Seeded %d papers\n", rows)
}
