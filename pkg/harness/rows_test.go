package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstRowMatching(t *testing.T) {
	rows := []string{
		"1984 George Orwell 9780451524935 4 of 4 available",
		"The Great Gatsby F. Scott Fitzgerald 9780743273565 3 of 3 available",
		"To Kill a Mockingbird Harper Lee 9780061120084 2 of 2 available",
	}

	tests := []struct {
		name     string
		want     string
		wantIdx  int
		wantOK   bool
	}{
		{"match by title", "The Great Gatsby", 1, true},
		{"match by isbn", "9780061120084", 2, true},
		{"first of several matches wins", "available", 0, true},
		{"no match", "Moby Dick", -1, false},
		{"empty rows", "anything", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := rows
			if tt.name == "empty rows" {
				in = nil
			}
			idx, ok := FirstRowMatching(in, tt.want)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)
		})
	}
}

func TestFirstRowMatchingIsDeterministic(t *testing.T) {
	rows := []string{"alpha row", "beta row", "beta again"}

	first, ok := FirstRowMatching(rows, "beta")
	assert.True(t, ok)
	for i := 0; i < 10; i++ {
		idx, ok := FirstRowMatching(rows, "beta")
		assert.True(t, ok)
		assert.Equal(t, first, idx)
	}
}
