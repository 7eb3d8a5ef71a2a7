package arxiv

//go:generate go run github.com/dmarkham/enumer -type SortBy -trimprefix SortBy -transform first-lower -text -yaml -output sortby.gen.go
//go:generate go run github.com/dmarkham/enumer -type SortOrder -trimprefix SortOrder -transform first-lower -text -yaml -output sortorder.gen.go

// SortBy selects the ranking the arXiv API applies to results.
// The String values match the API's sortBy parameter literals.
type SortBy int

const (
	SortByRelevance SortBy = iota
	SortByLastUpdatedDate
	SortBySubmittedDate
)

// SortOrder selects the direction results are returned in.
// The String values match the API's sortOrder parameter literals.
type SortOrder int

const (
	SortOrderAscending SortOrder = iota
	SortOrderDescending
)
