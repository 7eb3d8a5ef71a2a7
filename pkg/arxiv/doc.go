// Package arxiv is a minimal client for the arXiv API.
//
// The API serves Atom 1.0 feeds from a single query endpoint. This
// package covers the subset the bot needs: keyword search with paging
// and sorting, returning parsed entries with author lists and PDF
// links.
//
// # Usage
//
//	client := arxiv.NewClient()
//	result, err := client.Search(ctx, arxiv.Query{
//	    SearchQuery: arxiv.BuildQuery([]string{"RAG", "agents"}),
//	    MaxResults:  10,
//	    SortBy:      arxiv.SortBySubmittedDate,
//	    SortOrder:   arxiv.SortOrderDescending,
//	})
//
// Requests are retried on transient failures with a fixed delay, in
// line with the API's request-pacing guidance.
package arxiv
