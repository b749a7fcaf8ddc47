// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/erapp/internal/platform/apperr"
)

func externalIDs(sections []*Section) []string {
	ids := make([]string, len(sections))
	for i, section := range sections {
		ids[i] = section.ExternalID
	}
	return ids
}

/*
TestSearch_ReturnsExactMatchingSubset checks the match predicate against a
brute-force oracle and that repeated calls keep corpus order.
*/
func TestSearch_ReturnsExactMatchingSubset(t *testing.T) {
	f := newFixture(theftSection(), murderSection(), hurtSection())
	ctx := context.Background()

	corpus, source := f.corpus.LoadWorkingSet(ctx)
	require.Equal(t, SourceStore, source)

	for _, query := range []string{"theft", "KILLING", "hurt", "whoever", "e", "property.", "murder shall"} {
		t.Run(query, func(t *testing.T) {
			var want []string
			lowered := strings.ToLower(query)
			for _, section := range corpus {
				hit := strings.Contains(strings.ToLower(section.Title), lowered) ||
					strings.Contains(strings.ToLower(section.Description), lowered)
				for _, keyword := range section.Keywords {
					hit = hit || strings.Contains(keyword, lowered)
				}
				if hit {
					want = append(want, section.ExternalID)
				}
			}

			first, err := f.search.Search(ctx, query, false)
			require.NoError(t, err)
			second, err := f.search.Search(ctx, query, false)
			require.NoError(t, err)

			if diff := cmp.Diff(want, externalIDs(first.Sections)); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, externalIDs(first.Sections), externalIDs(second.Sections))
		})
	}
}

/*
TestSearch_BlankQuery verifies that blank queries never reach the store or ledger.
*/
func TestSearch_BlankQuery(t *testing.T) {
	f := newFixture(theftSection())

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := f.search.Search(context.Background(), query, true)
		assert.True(t, apperr.IsCode(err, apperr.CodeNoMatch))
	}

	assert.Zero(t, f.sections.listCalls)
	assert.Zero(t, f.terms.trackCalls)
}

/*
TestSearch_TheftLarcenyScenario covers matching, a tracked miss, and the
count increment on a repeated tracked miss.
*/
func TestSearch_TheftLarcenyScenario(t *testing.T) {
	f := newFixture(theftSection())
	ctx := context.Background()

	result, err := f.search.Search(ctx, "theft", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ipc-379"}, externalIDs(result.Sections))

	_, err = f.search.Search(ctx, "larceny", true)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoMatch))

	entry := f.terms.byTerm("larceny")
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.SearchCount)

	_, err = f.search.Search(ctx, "larceny", true)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoMatch))

	entry = f.terms.byTerm("larceny")
	require.NotNil(t, entry)
	assert.Equal(t, 2, entry.SearchCount)

	count, _ := f.terms.Count(ctx)
	assert.Equal(t, 1, count)
}

/*
TestSearch_TracksMatchedQueries keeps the observed behaviour of recording
successful searches too when tracking is requested.
*/
func TestSearch_TracksMatchedQueries(t *testing.T) {
	f := newFixture(theftSection())

	_, err := f.search.Search(context.Background(), "Theft", true)
	require.NoError(t, err)

	entry := f.terms.byTerm("theft")
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.SearchCount)
}

/*
TestSearch_TrackingFailureIsSwallowed ensures a ledger outage does not
fail a successful search.
*/
func TestSearch_TrackingFailureIsSwallowed(t *testing.T) {
	f := newFixture(theftSection())
	f.terms.trackErr = apperr.StoreUnavailable(errors.New("connection refused"))

	result, err := f.search.Search(context.Background(), "robbery", true)
	require.NoError(t, err)
	assert.Len(t, result.Sections, 1)
	assert.Equal(t, 1, f.terms.trackCalls)
}

/*
TestSearch_ResultShape checks the summary, action and related-law derivation.
*/
func TestSearch_ResultShape(t *testing.T) {
	f := newFixture(theftSection(), murderSection(), hurtSection())

	result, err := f.search.Search(context.Background(), "Killing", false)
	require.NoError(t, err)

	want := &SearchResult{
		Sections:         []*Section{murderSection(), hurtSection()},
		Summary:          `Based on your search for "Killing", here are the relevant legal provisions under Indian law.`,
		EmergencyActions: []string{"Immediately call police (100)"},
		RelatedLaws:      []string{string(CategoryCrimesAgainstBody)},
		Source:           SourceStore,
	}

	// Sorted by title: "Murder" < "Voluntarily Causing Hurt".
	for _, section := range want.Sections {
		section.EmergencyActions = append([]string{}, section.EmergencyActions...)
		section.RelatedSections = []string{}
		section.RelatedLaws = []string{}
	}

	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

/*
TestSearch_GenericActions uses the fixed action list when the top match has none.
*/
func TestSearch_GenericActions(t *testing.T) {
	f := newFixture(hurtSection())

	result, err := f.search.Search(context.Background(), "assault", false)
	require.NoError(t, err)
	assert.Equal(t, genericEmergencyActions, result.EmergencyActions)
}

/*
TestSearch_CaseFoldingOnly confirms that diacritics and punctuation are matched literally.
*/
func TestSearch_CaseFoldingOnly(t *testing.T) {
	section := theftSection()
	section.Keywords = append(section.Keywords, "café brawl")
	f := newFixture(section)
	ctx := context.Background()

	_, err := f.search.Search(ctx, "CAFÉ", false)
	assert.NoError(t, err)

	_, err = f.search.Search(ctx, "cafe", false)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoMatch))

	_, err = f.search.Search(ctx, "theft!", false)
	assert.True(t, apperr.IsCode(err, apperr.CodeNoMatch))
}

/*
TestSearch_FallbackCorpus covers the degraded read path for an unreachable
store and for an empty store.
*/
func TestSearch_FallbackCorpus(t *testing.T) {
	t.Run("store_unavailable", func(t *testing.T) {
		f := newFixture(theftSection())
		f.sections.listErr = apperr.StoreUnavailable(context.DeadlineExceeded)

		result, err := f.search.Search(context.Background(), "murder", false)
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, result.Source)
		assert.Contains(t, externalIDs(result.Sections), "ipc-302")
	})

	t.Run("store_empty", func(t *testing.T) {
		f := newFixture()

		result, err := f.search.Search(context.Background(), "dowry", false)
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, result.Source)
		assert.Equal(t, []string{"ipc-498A"}, externalIDs(result.Sections))
	})
}
