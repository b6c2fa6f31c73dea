package vocab

// Entry is a distinct token and the number of times it was observed.
type Entry struct {
	Word  string
	Count int64
}
