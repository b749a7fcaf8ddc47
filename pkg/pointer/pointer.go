// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds generic helpers for optional fields, such as the
// pointer-typed members of a partial profile update.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning current when p is nil. It applies an
// optional update on top of an existing value.
func Fallback[T any](p *T, current T) T {
	if p == nil {
		return current
	}
	return *p
}
