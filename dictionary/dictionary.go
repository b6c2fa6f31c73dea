package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/teatak/vocab/vocab"
)

// Dictionary is a vocabulary file loaded back into memory.
type Dictionary struct {
	Total int64
	Words map[string]int64
	// Order lists the words in file order, which is rank order for emitted vocabularies.
	Order []string
	ranks map[string]int
}

// NewDictionary creates a new empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		Words: make(map[string]int64),
		ranks: make(map[string]int),
	}
}

// Load reads a vocabulary file.
// File format: word count (single space separated, one entry per line)
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vocabulary: %v", vocab.ErrIOUnavailable, err)
	}
	defer file.Close()

	d, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse reads a vocabulary in emitted form. A word seen twice is rejected.
func Parse(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		// the word may hold any non-whitespace byte, so split on the last space
		sep := bytes.LastIndexByte(raw, ' ')
		if sep <= 0 {
			return nil, fmt.Errorf("line %d: missing count", line)
		}
		count, err := strconv.ParseInt(string(raw[sep+1:]), 10, 64)
		if err != nil || count < 1 {
			return nil, fmt.Errorf("line %d: invalid count %q", line, raw[sep+1:])
		}
		word := string(raw[:sep])
		if _, ok := d.Words[word]; ok {
			return nil, fmt.Errorf("line %d: duplicate word %q", line, word)
		}
		d.Words[word] = count
		d.Order = append(d.Order, word)
		d.ranks[word] = len(d.Order)
		d.Total += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read vocabulary: %v", vocab.ErrIOUnavailable, err)
	}
	return d, nil
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.Order)
}

// Count returns the count of a word.
func (d *Dictionary) Count(word string) (int64, bool) {
	val, ok := d.Words[word]
	return val, ok
}

// Rank returns the 1-based position of word, the id downstream stages assign to it.
func (d *Dictionary) Rank(word string) (int, bool) {
	r, ok := d.ranks[word]
	return r, ok
}

// Top returns the first n entries in file order.
func (d *Dictionary) Top(n int) []vocab.Entry {
	if n > len(d.Order) {
		n = len(d.Order)
	}
	if n < 0 {
		n = 0
	}
	out := make([]vocab.Entry, n)
	for i, w := range d.Order[:n] {
		out[i] = vocab.Entry{Word: w, Count: d.Words[w]}
	}
	return out
}

// UnknownLogProbability is reported for words outside the vocabulary.
const UnknownLogProbability = -20.0

// LogProbability returns ln(count/Total), the unigram log probability of word.
func (d *Dictionary) LogProbability(word string) float64 {
	c, ok := d.Words[word]
	if !ok || d.Total <= 0 {
		return UnknownLogProbability
	}
	return math.Log(float64(c)) - math.Log(float64(d.Total))
}
