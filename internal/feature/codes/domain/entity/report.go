package entity

// SkippedRow records one listing row the parser rejected, with the reason it
// could not be shaped into a CodeRecord.
type SkippedRow struct {
	Row    int // 1-based row index within the listing table, header included
	Reason string
}

// FetchReport summarizes one fetch-parse pass over a listing page. Skipped
// rows are reported here instead of failing the whole download.
type FetchReport struct {
	Category Category
	Accepted int
	Skipped  []SkippedRow
}
