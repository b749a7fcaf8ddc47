// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/erapp/pkg/textnorm"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase_and_trim", "  Larceny ", "larceny"},
		{"already_canonical", "theft", "theft"},
		{"combining_accent_composed", "Cafe\u0301", "caf\u00e9"},
		{"punctuation_kept", "Hit-and-Run!", "hit-and-run!"},
		{"inner_whitespace_kept", "Hit  and Run", "hit  and run"},
		{"compatibility_form_kept", "\uFB01re", "\uFB01re"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Keyword(tt.in))
		})
	}
}

func TestKeywords_DeduplicatesInOrder(t *testing.T) {
	got := textnorm.Keywords([]string{"Theft", "robbery", " theft ", "", "Mugging"})
	assert.Equal(t, []string{"theft", "robbery", "mugging"}, got)
}
