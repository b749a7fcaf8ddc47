// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes short free-text values (keywords, search
// terms) before they are stored.
//
// # Pipeline
//
//  1. Unicode NFC composition, so "é" typed as e + U+0301 and the precomposed
//     form are stored identically. Accents are kept.
//  2. Leading/trailing whitespace removal.
//  3. Lowercasing.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Keyword returns the canonical stored form of a keyword or search term.
func Keyword(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Keywords normalizes every entry, dropping empties and duplicates while
// keeping first-seen order.
func Keywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, raw := range in {
		keyword := Keyword(raw)
		if keyword == "" {
			continue
		}
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}

	return out
}
