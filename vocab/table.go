// Package vocab counts tokens and ranks the resulting vocabulary.
package vocab

import "math"

// DefaultBuckets is the bucket count of a table built with NewTable(0, nil).
const DefaultBuckets = 1 << 20

// node is a chained table record. next is an index into Table.nodes, 0 ends the chain.
type node struct {
	word  string
	count int64
	next  uint32
}

// Table is a fixed-size chained hash table from token to count.
// Chains are kept in move-to-front order: a token found past the head of its
// chain is relinked at the head. New tokens are appended at the tail.
type Table struct {
	heads  []uint32
	nodes  []node
	hash   HashFunc
	tokens int64
	// limit is the highest node index the table may allocate.
	limit uint64
}

// NewTable creates a table with the given number of buckets.
// A non-positive bucket count selects DefaultBuckets and a nil hash selects BitwiseHash.
func NewTable(buckets int, hash HashFunc) *Table {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	if hash == nil {
		hash = BitwiseHash
	}
	return &Table{
		heads: make([]uint32, buckets),
		// index 0 is the end-of-chain sentinel
		nodes: make([]node, 1, 1024),
		hash:  hash,
		limit: math.MaxUint32,
	}
}

// Observe records one occurrence of token.
func (t *Table) Observe(token []byte) error {
	b := t.hash(token) % uint32(len(t.heads))

	var prev uint32
	cur := t.heads[b]
	for cur != 0 && t.nodes[cur].word != string(token) {
		prev = cur
		cur = t.nodes[cur].next
	}

	if cur == 0 {
		if uint64(len(t.nodes)) > t.limit {
			return ErrResourceExhausted
		}
		idx := uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{word: string(token), count: 1})
		if prev == 0 {
			t.heads[b] = idx
		} else {
			t.nodes[prev].next = idx
		}
		t.tokens++
		return nil
	}

	n := &t.nodes[cur]
	n.count++
	if prev != 0 {
		t.nodes[prev].next = n.next
		n.next = t.heads[b]
		t.heads[b] = cur
	}
	t.tokens++
	return nil
}

// Len returns the number of distinct tokens.
func (t *Table) Len() int {
	return len(t.nodes) - 1
}

// Tokens returns the number of observations.
func (t *Table) Tokens() int64 {
	return t.tokens
}

// Buckets returns the fixed bucket count.
func (t *Table) Buckets() int {
	return len(t.heads)
}

// Each calls fn for every entry, bucket by bucket, in chain order.
func (t *Table) Each(fn func(Entry)) {
	for _, head := range t.heads {
		for cur := head; cur != 0; cur = t.nodes[cur].next {
			n := &t.nodes[cur]
			fn(Entry{Word: n.word, Count: n.count})
		}
	}
}

func (t *Table) chain(bucket int) []string {
	var words []string
	for cur := t.heads[bucket]; cur != 0; cur = t.nodes[cur].next {
		words = append(words, t.nodes[cur].word)
	}
	return words
}
