package repository

// sortColumn returns the requested column when it is in the allowed set,
// otherwise the fallback. Sort input arrives from the query string and ends
// up inside ORDER BY, so only known column names may pass through.
func sortColumn(requested, fallback string, allowed map[string]bool) string {
	if allowed[requested] {
		return requested
	}
	return fallback
}
