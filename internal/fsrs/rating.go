package fsrs

// Rating is the user's assessment of how well an item was recalled.
type Rating int

const (
	// Again means the item was not recalled at all
	Again Rating = 1
	// Hard means the item was recalled with significant effort
	Hard Rating = 2
	// Good means the item was recalled correctly
	Good Rating = 3
	// Easy means the item was recalled without any effort
	Easy Rating = 4
)

var ratingNames = map[Rating]string{
	Again: "again",
	Hard:  "hard",
	Good:  "good",
	Easy:  "easy",
}

// String returns the lowercase name of the rating, e.g. "good".
func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether r is one of the four defined ratings.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}
