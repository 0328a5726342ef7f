package usecase

// maxQueryLength is the search API limit on the q parameter
const maxQueryLength = 256

// BuildSearchQueries packs tokens into as few queries as possible. Every
// query starts with prefix and tokens are joined with sep. A token is
// appended to the last query only if the result stays within
// maxQueryLength - len(sep); otherwise it starts a new query, even when it
// is too long to fit any query.
func BuildSearchQueries(prefix string, tokens []string, sep string) []string {
	var queries []string
	limit := maxQueryLength - len(sep)

	for _, token := range tokens {
		if n := len(queries); n > 0 && len(queries[n-1])+len(sep)+len(token) <= limit {
			queries[n-1] += sep + token
			continue
		}
		queries = append(queries, prefix+sep+token)
	}

	return queries
}
