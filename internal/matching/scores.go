// Package matching provides request matching algorithms.
package matching

// Match score constants for body matching.
// Higher scores indicate more specific/precise matches.
const (
	// ScoreBodyEquals is the score for a body whose every concrete leaf matched.
	ScoreBodyEquals = 25

	// ScoreBodyPattern is the score for a body declared as a single pattern.
	ScoreBodyPattern = 22

	// ScoreBodyNoCriteria is the score when no body is declared.
	ScoreBodyNoCriteria = 1
)

// Match score constants for URL matching.
const (
	// ScorePathExact is the score for a literal URL match.
	ScorePathExact = 15

	// ScorePathPattern is the score for a URL regex pattern match.
	ScorePathPattern = 14
)

// Match score constants for method, header, cookie and query matching.
const (
	// ScoreMethod is the score for a method match.
	ScoreMethod = 10

	// ScoreHeader is the score for each header match.
	ScoreHeader = 10

	// ScoreCookie is the score for each cookie match.
	ScoreCookie = 8

	// ScoreQueryParam is the score for each query parameter match.
	ScoreQueryParam = 5
)

// Match score constants for body matchers.
const (
	// ScoreJSONPathCondition is the score per satisfied body matcher.
	ScoreJSONPathCondition = 15
)
