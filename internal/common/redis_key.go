package common

import "fmt"

const RedisKeyResultsPattern = "results:*"

// RedisKeyResults is the cache key of the results of one category, or of every category when slug
// is empty.
func RedisKeyResults(slug string, countOpenBallots bool) string {
	if slug == "" {
		slug = "_all"
	}

	scope := "final"
	if countOpenBallots {
		scope = "all"
	}

	return fmt.Sprintf("results:%s:%s", scope, slug)
}
