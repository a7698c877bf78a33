package matching

// Match score constants for path matching.
const (
	// ScoreNoMatch is returned when a path does not match a pattern.
	ScoreNoMatch = 0

	// ScorePathMatch is the base score every successful match receives.
	ScorePathMatch = 1

	// MaxSegments is the number of segments that contribute positional
	// weight. Segments past this limit still have to match but add no score.
	MaxSegments = 16
)

// literalWeight returns the score contributed by a literal segment at
// position i. Weights halve with depth so an earlier literal outranks any
// combination of later literals.
func literalWeight(i int) int {
	if i >= MaxSegments {
		return 0
	}
	return 1 << (MaxSegments - i)
}
