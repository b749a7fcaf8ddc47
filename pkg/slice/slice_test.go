// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/erapp/pkg/slice"
)

/*
TestFilter keeps order and never returns nil.
*/
func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4, 6}, slice.Filter([]int{1, 2, 3, 4, 5, 6}, even))
	assert.Equal(t, []int{}, slice.Filter([]int{1, 3}, even))
	assert.Equal(t, []int{}, slice.Filter(nil, even))
}
