// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/erapp/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.IsValid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13])
}

func TestIsValid(t *testing.T) {
	assert.True(t, uuid.IsValid("0190a6b2-7f3c-7d4e-8a1b-2c3d4e5f6a7b"))
	assert.False(t, uuid.IsValid("ipc-302"))
	assert.False(t, uuid.IsValid(""))
	assert.False(t, uuid.IsValid("65f1c2a9e4b0a1b2c3d4e5f6"))
}
