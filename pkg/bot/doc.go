// Package bot implements the fetch loop: query arXiv for the configured
// keywords, store previously unseen papers, and record each pass.
package bot
