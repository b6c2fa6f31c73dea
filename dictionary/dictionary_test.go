package dictionary

import (
	"bytes"
	"errors"
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/teatak/vocab/vocab"
)

func TestLoad(t *testing.T) {
	content := "the 100\nof 60\nand 60\nglove 1\n"
	tmpfile, err := os.CreateTemp("", "vocab.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	dict, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if dict.Total != 221 {
		t.Errorf("dict.Total = %v, want 221", dict.Total)
	}
	if dict.Len() != 4 {
		t.Errorf("dict.Len() = %v, want 4", dict.Len())
	}
	if r, ok := dict.Rank("and"); !ok || r != 3 {
		t.Errorf("Rank('and') = %v, %v, want 3, true", r, ok)
	}
	if c, ok := dict.Count("glove"); !ok || c != 1 {
		t.Errorf("Count('glove') = %v, %v, want 1, true", c, ok)
	}
	if _, ok := dict.Count("missing"); ok {
		t.Errorf("Count('missing') found, want absent")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("does/not/exist.txt")
	if !errors.Is(err, vocab.ErrIOUnavailable) {
		t.Errorf("Load() error = %v, want ErrIOUnavailable", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing count", "word\n"},
		{"bad count", "word x\n"},
		{"zero count", "word 0\n"},
		{"empty word", " 3\n"},
		{"duplicate", "a 2\na 1\n"},
	}

	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt.input)); err == nil {
			t.Errorf("%s: Parse() error = nil, want error", tt.name)
		}
	}
}

func TestDictionary_Top(t *testing.T) {
	dict, err := Parse(strings.NewReader("a 3\nb 2\nc 1\n"))
	if err != nil {
		t.Fatal(err)
	}

	want := []vocab.Entry{{Word: "a", Count: 3}, {Word: "b", Count: 2}}
	if got := dict.Top(2); !reflect.DeepEqual(got, want) {
		t.Errorf("Top(2) = %v, want %v", got, want)
	}
	if got := dict.Top(10); len(got) != 3 {
		t.Errorf("len(Top(10)) = %v, want 3", len(got))
	}
	if got := dict.Top(-1); len(got) != 0 {
		t.Errorf("len(Top(-1)) = %v, want 0", len(got))
	}
}

func TestDictionary_LogProbability(t *testing.T) {
	dict, err := Parse(strings.NewReader("the 6\nof 3\nglove 1\n"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word string
		want float64
	}{
		{"the", math.Log(0.6)},
		{"of", math.Log(0.3)},
		{"glove", math.Log(0.1)},
		{"missing", UnknownLogProbability},
	}
	for _, tt := range tests {
		if got := dict.LogProbability(tt.word); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LogProbability(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}

	if got := NewDictionary().LogProbability("the"); got != UnknownLogProbability {
		t.Errorf("empty LogProbability = %v, want %v", got, UnknownLogProbability)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	entries := []vocab.Entry{{Word: "a", Count: 3}, {Word: "b", Count: 2}, {Word: "c\xff", Count: 1}}

	var buf bytes.Buffer
	n, err := NewWriter(&buf).Write(entries)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Write() = %v, want 3", n)
	}
	if got, want := buf.String(), "a 3\nb 2\nc\xff 1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	dict, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dict.Top(3), entries) {
		t.Errorf("round trip = %v, want %v", dict.Top(3), entries)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_Error(t *testing.T) {
	_, err := NewWriter(brokenWriter{}).Write([]vocab.Entry{{Word: "a", Count: 1}})
	if !errors.Is(err, vocab.ErrIOUnavailable) {
		t.Errorf("Write() error = %v, want ErrIOUnavailable", err)
	}
}
