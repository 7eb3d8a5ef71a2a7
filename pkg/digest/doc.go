// Package digest generates Markdown digests of stored papers and parses
// existing digests back into the arXiv ids they mention.
package digest
