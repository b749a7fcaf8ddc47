// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/erapp/internal/platform/apperr"
)

/*
TestCuration_LinkCreatesSection covers linking to a missing section with a
composite fallback title.
*/
func TestCuration_LinkCreatesSection(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "Doxxing")
	require.NoError(t, err)

	result, err := f.curation.Link(ctx, LinkInput{
		TermID:        entry.ID,
		TargetRef:     "ipc-999",
		FallbackTitle: "IPC Section 999 - Test",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	stored := f.sections.byExternalID("ipc-999")
	require.NotNil(t, stored)
	assert.Equal(t, "IPC Section 999", stored.Code)
	assert.Equal(t, "Test", stored.Title)
	assert.Equal(t, "Created from unadded term", stored.Description)
	assert.Equal(t, CategoryGeneral, stored.Category)
	assert.Equal(t, []string{"doxxing"}, stored.Keywords)
	assert.Equal(t, []string{"Contact authorities if needed"}, stored.EmergencyActions)
	assert.Empty(t, stored.RelatedSections)

	assert.Nil(t, f.terms.byTerm("doxxing"))
}

/*
TestCuration_LinkIsIdempotentOnKeywords links the same term twice into one section.
*/
func TestCuration_LinkIsIdempotentOnKeywords(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		entry, err := f.ledger.Track(ctx, "pickpocketing")
		require.NoError(t, err)

		_, err = f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-379"})
		require.NoError(t, err)
	}

	// Already-present keyword is also a no-op.
	entry, err := f.ledger.Track(ctx, "theft")
	require.NoError(t, err)
	_, err = f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-379"})
	require.NoError(t, err)

	assert.Equal(t, []string{"theft", "robbery", "pickpocketing"}, f.sections.byExternalID("ipc-379").Keywords)
}

/*
TestCuration_LinkResolvesInternalID checks that an internal identifier wins
and that the listing cache is invalidated after the write.
*/
func TestCuration_LinkResolvesInternalID(t *testing.T) {
	f := newFixture(theftSection(), murderSection())
	ctx := context.Background()

	_, err := f.corpus.ListSections(ctx)
	require.NoError(t, err)
	require.NotNil(t, f.cache.sections)

	entry, err := f.ledger.Track(ctx, "contract killing")
	require.NoError(t, err)

	result, err := f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: murderSection().ID})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, "ipc-302", result.Section.ExternalID)
	assert.Contains(t, result.Section.Keywords, "contract killing")
	assert.Nil(t, f.cache.sections)
}

/*
TestCuration_LinkMissingSection reports NotFound when nothing resolves and
no title was supplied, leaving the ledger untouched.
*/
func TestCuration_LinkMissingSection(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "doxxing")
	require.NoError(t, err)

	_, err = f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-999"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Existing case not found", appErr.Message)
	assert.NotNil(t, f.terms.byTerm("doxxing"))
}

/*
TestCuration_LinkUnknownTerm reports NotFound for a stale ledger id.
*/
func TestCuration_LinkUnknownTerm(t *testing.T) {
	f := newFixture(theftSection())

	_, err := f.curation.Link(context.Background(), LinkInput{
		TermID:    "0192f0c4-0000-7000-8000-00000000dead",
		TargetRef: "ipc-379",
	})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCuration_LinkPartialCompletion verifies that a failed ledger removal after
the keyword write is reported distinctly and keeps the keyword.
*/
func TestCuration_LinkPartialCompletion(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "shoplifting")
	require.NoError(t, err)

	f.terms.deleteErr = apperr.StoreUnavailable(errors.New("connection reset"))

	_, err = f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-379"})
	assert.True(t, apperr.IsCode(err, apperr.CodePartialCompletion))
	assert.Contains(t, f.sections.byExternalID("ipc-379").Keywords, "shoplifting")
	assert.NotNil(t, f.terms.byTerm("shoplifting"))
}

/*
TestCuration_LinkWriteFailure surfaces a failed keyword write as a full failure.
*/
func TestCuration_LinkWriteFailure(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "shoplifting")
	require.NoError(t, err)

	f.sections.writeErr = apperr.StoreUnavailable(context.DeadlineExceeded)

	_, err = f.curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-379"})
	assert.True(t, apperr.IsCode(err, apperr.CodeStoreUnavailable))
	assert.NotNil(t, f.terms.byTerm("shoplifting"))
}

// vanishingSectionRepo resolves a section and then loses the whole corpus,
// as a concurrent replacing import would.
type vanishingSectionRepo struct {
	*memSectionRepo
}

func (repo *vanishingSectionRepo) FindByExternalID(ctx context.Context, externalID string) (*Section, error) {
	section, err := repo.memSectionRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if _, err := repo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	return section, nil
}

/*
TestCuration_LinkSectionRemovedMidway reports NotFound when the resolved
section is gone before the keyword write, and keeps the ledger entry.
*/
func TestCuration_LinkSectionRemovedMidway(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	corpus := NewCorpus(&vanishingSectionRepo{memSectionRepo: f.sections}, f.cache, nil, discardLogger())
	curation := NewCuration(corpus, f.ledger, discardLogger())

	entry, err := f.ledger.Track(ctx, "pickpocketing")
	require.NoError(t, err)

	result, err := curation.Link(ctx, LinkInput{TermID: entry.ID, TargetRef: "ipc-379"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperr.IsNotFound(err))

	assert.NotNil(t, f.terms.byTerm("pickpocketing"))
	count, err := f.sections.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

/*
TestCuration_IgnoreTwice checks that the second dismissal reports NotFound.
*/
func TestCuration_IgnoreTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry, err := f.ledger.Track(ctx, "loitering")
	require.NoError(t, err)

	require.NoError(t, f.curation.Ignore(ctx, entry.ID))
	assert.True(t, apperr.IsNotFound(f.curation.Ignore(ctx, entry.ID)))
}
