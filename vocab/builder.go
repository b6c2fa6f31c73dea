package vocab

// Default array sizing, tuned for natural-language vocabularies.
const (
	DefaultInitialCapacity = 12500
	DefaultGrowthIncrement = 2500
)

// Builder migrates a populated table into a dense slice.
// Capacity grows by a fixed Increment, never by a factor, so peak memory tracks
// the vocabulary size closely.
type Builder struct {
	Initial   int
	Increment int
}

// NewBuilder returns a builder, falling back to the defaults for non-positive sizes.
func NewBuilder(initial, increment int) Builder {
	if initial <= 0 {
		initial = DefaultInitialCapacity
	}
	if increment <= 0 {
		increment = DefaultGrowthIncrement
	}
	return Builder{Initial: initial, Increment: increment}
}

// Build returns one entry per distinct token in bucket-then-chain order.
func (b Builder) Build(t *Table) []Entry {
	size := b.Initial
	out := make([]Entry, 0, size)
	t.Each(func(e Entry) {
		if len(out) >= size {
			size += b.Increment
			grown := make([]Entry, len(out), size)
			copy(grown, out)
			out = grown
		}
		out = append(out, e)
	})
	return out
}
