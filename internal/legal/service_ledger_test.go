// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/erapp/internal/platform/apperr"
)

/*
TestLedger_TrackIsMonotonic verifies that repeated tracking of equivalent
inputs strictly increases one row's count.
*/
func TestLedger_TrackIsMonotonic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	previous := 0
	for _, input := range []string{"Stalking", "  stalking ", "STALKING", "stalking"} {
		entry, err := f.ledger.Track(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "stalking", entry.Term)
		assert.Greater(t, entry.SearchCount, previous)
		previous = entry.SearchCount
	}

	count, err := f.ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 4, previous)
}

/*
TestLedger_TrackRejectsBlank ensures blank terms fail validation without a write.
*/
func TestLedger_TrackRejectsBlank(t *testing.T) {
	f := newFixture()

	_, err := f.ledger.Track(context.Background(), "   ")
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	assert.Zero(t, f.terms.trackCalls)
}

/*
TestLedger_ListOrder checks the count-then-recency ranking.
*/
func TestLedger_ListOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := func(term string, count int, last time.Time) {
		for i := 0; i < count; i++ {
			_, err := f.terms.Track(ctx, term+"-id", term, last)
			require.NoError(t, err)
		}
	}

	seed("a", 5, base)
	seed("b", 5, base.Add(time.Hour))
	seed("c", 2, base.Add(2*time.Hour))

	entries, err := f.ledger.List(ctx)
	require.NoError(t, err)

	terms := make([]string, len(entries))
	for i, entry := range entries {
		terms[i] = entry.Term
	}
	assert.Equal(t, []string{"b", "a", "c"}, terms)
}

/*
TestLedger_Remove covers deletion, repeated deletion and malformed ids.
*/
func TestLedger_Remove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "stalking")
	require.NoError(t, err)

	require.NoError(t, f.ledger.Remove(ctx, entry.ID))
	assert.True(t, apperr.IsNotFound(f.ledger.Remove(ctx, entry.ID)))
	assert.True(t, apperr.IsNotFound(f.ledger.Remove(ctx, "not-a-uuid")))
}

/*
TestLedger_TrackSurfacesStoreFailure verifies that write failures are reported.
*/
func TestLedger_TrackSurfacesStoreFailure(t *testing.T) {
	f := newFixture()
	f.terms.trackErr = apperr.StoreUnavailable(context.DeadlineExceeded)

	_, err := f.ledger.Track(context.Background(), "stalking")
	assert.True(t, apperr.IsCode(err, apperr.CodeStoreUnavailable))
}

// deadlineTermRepo records whether each read arrived with a deadline.
type deadlineTermRepo struct {
	*memTermRepo
	bounded map[string]bool
}

func (repo *deadlineTermRepo) List(ctx context.Context) ([]*UnaddedTerm, error) {
	_, repo.bounded["list"] = ctx.Deadline()
	return repo.memTermRepo.List(ctx)
}

func (repo *deadlineTermRepo) FindByID(ctx context.Context, id string) (*UnaddedTerm, error) {
	_, repo.bounded["get"] = ctx.Deadline()
	return repo.memTermRepo.FindByID(ctx, id)
}

func (repo *deadlineTermRepo) Count(ctx context.Context) (int, error) {
	_, repo.bounded["count"] = ctx.Deadline()
	return repo.memTermRepo.Count(ctx)
}

/*
TestLedger_ReadsAreBounded verifies that every ledger read runs under a deadline.
*/
func TestLedger_ReadsAreBounded(t *testing.T) {
	repo := &deadlineTermRepo{memTermRepo: newMemTermRepo(), bounded: map[string]bool{}}
	ledger := NewLedger(repo, discardLogger())
	ctx := context.Background()

	entry, err := ledger.Track(ctx, "stalking")
	require.NoError(t, err)

	_, err = ledger.List(ctx)
	require.NoError(t, err)
	_, err = ledger.Get(ctx, entry.ID)
	require.NoError(t, err)
	_, err = ledger.Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"list": true, "get": true, "count": true}, repo.bounded)
}
