package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short string untouched", in: "create MBA-1", max: 20, want: "create MBA-1"},
		{name: "whitespace collapsed", in: "create\n  MBA-1\tnow", max: 20, want: "create MBA-1 now"},
		{name: "long string shortened", in: "create an issue in project MBA", max: 20, want: "create an issue i..."},
		{name: "multibyte prompt cut on rune boundary", in: "課題を作成してくださいお願いします", max: 10, want: "課題を作成して..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
