// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/erapp/internal/platform/apperr"
)

// memSectionRepo is an in-memory [SectionRepository] with fault injection.
type memSectionRepo struct {
	mu        sync.Mutex
	sections  []*Section
	listErr   error
	writeErr  error
	listCalls int
}

func newMemSectionRepo(sections ...*Section) *memSectionRepo {
	repo := &memSectionRepo{}
	for _, section := range sections {
		repo.sections = append(repo.sections, cloneSection(section))
	}
	return repo
}

func cloneSection(section *Section) *Section {
	out := *section
	out.Keywords = append([]string{}, section.Keywords...)
	out.EmergencyActions = append([]string{}, section.EmergencyActions...)
	out.RelatedSections = append([]string{}, section.RelatedSections...)
	out.RelatedLaws = append([]string{}, section.RelatedLaws...)
	return &out
}

func (repo *memSectionRepo) List(context.Context) ([]*Section, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.listCalls++

	if repo.listErr != nil {
		return nil, repo.listErr
	}

	out := make([]*Section, 0, len(repo.sections))
	for _, section := range repo.sections {
		out = append(out, cloneSection(section))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (repo *memSectionRepo) find(match func(*Section) bool) (*Section, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.listErr != nil {
		return nil, repo.listErr
	}
	for _, section := range repo.sections {
		if match(section) {
			return cloneSection(section), nil
		}
	}
	return nil, apperr.NotFound("Section")
}

func (repo *memSectionRepo) FindByID(_ context.Context, id string) (*Section, error) {
	return repo.find(func(s *Section) bool { return s.ID == id })
}

func (repo *memSectionRepo) FindByExternalID(_ context.Context, externalID string) (*Section, error) {
	return repo.find(func(s *Section) bool { return s.ExternalID != "" && s.ExternalID == externalID })
}

func (repo *memSectionRepo) Create(_ context.Context, section *Section) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.writeErr != nil {
		return repo.writeErr
	}
	for _, existing := range repo.sections {
		if section.ExternalID != "" && existing.ExternalID == section.ExternalID {
			return apperr.Conflict("Section already exists")
		}
	}
	repo.sections = append(repo.sections, cloneSection(section))
	return nil
}

func (repo *memSectionRepo) AppendKeyword(_ context.Context, id, keyword string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.writeErr != nil {
		return false, repo.writeErr
	}
	for _, section := range repo.sections {
		if section.ID == id {
			if section.HasKeyword(keyword) {
				return false, nil
			}
			section.Keywords = append(section.Keywords, keyword)
			return true, nil
		}
	}
	return false, apperr.NotFound("Section")
}

func (repo *memSectionRepo) Upsert(_ context.Context, section *Section) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.writeErr != nil {
		return repo.writeErr
	}
	for i, existing := range repo.sections {
		if existing.ExternalID == section.ExternalID {
			merged := cloneSection(section)
			merged.ID = existing.ID
			merged.Keywords = append([]string{}, existing.Keywords...)
			for _, keyword := range section.Keywords {
				if !merged.HasKeyword(keyword) {
					merged.Keywords = append(merged.Keywords, keyword)
				}
			}
			repo.sections[i] = merged
			return nil
		}
	}
	repo.sections = append(repo.sections, cloneSection(section))
	return nil
}

func (repo *memSectionRepo) DeleteAll(context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	removed := int64(len(repo.sections))
	repo.sections = nil
	return removed, nil
}

func (repo *memSectionRepo) Count(context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.sections), nil
}

func (repo *memSectionRepo) byExternalID(externalID string) *Section {
	section, _ := repo.FindByExternalID(context.Background(), externalID)
	return section
}

// memTermRepo is an in-memory [TermRepository] with fault injection.
type memTermRepo struct {
	mu         sync.Mutex
	terms      map[string]*UnaddedTerm
	trackErr   error
	deleteErr  error
	trackCalls int
}

func newMemTermRepo() *memTermRepo {
	return &memTermRepo{terms: make(map[string]*UnaddedTerm)}
}

func (repo *memTermRepo) Track(_ context.Context, id, term string, at time.Time) (*UnaddedTerm, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.trackCalls++

	if repo.trackErr != nil {
		return nil, repo.trackErr
	}
	for _, existing := range repo.terms {
		if existing.Term == term {
			existing.SearchCount++
			existing.LastSearched = at
			existing.UpdatedAt = at
			out := *existing
			return &out, nil
		}
	}

	entry := &UnaddedTerm{ID: id, Term: term, SearchCount: 1, LastSearched: at, CreatedAt: at, UpdatedAt: at}
	repo.terms[id] = entry
	out := *entry
	return &out, nil
}

func (repo *memTermRepo) List(context.Context) ([]*UnaddedTerm, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	out := make([]*UnaddedTerm, 0, len(repo.terms))
	for _, entry := range repo.terms {
		copied := *entry
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SearchCount != out[j].SearchCount {
			return out[i].SearchCount > out[j].SearchCount
		}
		return out[i].LastSearched.After(out[j].LastSearched)
	})
	return out, nil
}

func (repo *memTermRepo) FindByID(_ context.Context, id string) (*UnaddedTerm, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entry, ok := repo.terms[id]
	if !ok {
		return nil, apperr.NotFound("Term")
	}
	out := *entry
	return &out, nil
}

func (repo *memTermRepo) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.deleteErr != nil {
		return repo.deleteErr
	}
	if _, ok := repo.terms[id]; !ok {
		return apperr.NotFound("Term")
	}
	delete(repo.terms, id)
	return nil
}

func (repo *memTermRepo) Count(context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.terms), nil
}

func (repo *memTermRepo) byTerm(term string) *UnaddedTerm {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, entry := range repo.terms {
		if entry.Term == term {
			out := *entry
			return &out
		}
	}
	return nil
}

// memCache is an in-memory [SectionCache].
type memCache struct {
	mu          sync.Mutex
	sections    []*Section
	invalidated int
}

func (cache *memCache) Get(context.Context) ([]*Section, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.sections == nil {
		return nil, ErrCacheMiss
	}
	return cache.sections, nil
}

func (cache *memCache) Set(_ context.Context, sections []*Section) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.sections = sections
	return nil
}

func (cache *memCache) Invalidate(context.Context) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.sections = nil
	cache.invalidated++
	return nil
}

// # Fixtures

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func theftSection() *Section {
	return &Section{
		ID:               "0192f0c4-0000-7000-8000-000000000379",
		ExternalID:       "ipc-379",
		Code:             "IPC Section 379",
		Title:            "Theft",
		Description:      "Dishonestly taking moveable property.",
		Category:         CategoryCrimesAgainstProp,
		Keywords:         []string{"theft", "robbery"},
		EmergencyActions: []string{"Call police (100)"},
	}
}

func murderSection() *Section {
	return &Section{
		ID:               "0192f0c4-0000-7000-8000-000000000302",
		ExternalID:       "ipc-302",
		Code:             "IPC Section 302",
		Title:            "Murder",
		Description:      "Whoever commits murder shall be punished with death.",
		Category:         CategoryCrimesAgainstBody,
		Keywords:         []string{"murder", "homicide", "killing"},
		EmergencyActions: []string{"Immediately call police (100)"},
	}
}

func hurtSection() *Section {
	return &Section{
		ID:          "0192f0c4-0000-7000-8000-000000000323",
		ExternalID:  "ipc-323",
		Code:        "IPC Section 323",
		Title:       "Voluntarily Causing Hurt",
		Description: "Whoever voluntarily causes hurt, except in the case of a killing.",
		Category:    CategoryCrimesAgainstBody,
		Keywords:    []string{"assault", "hurt"},
	}
}

// fixture bundles the services over shared in-memory stores.
type fixture struct {
	sections *memSectionRepo
	terms    *memTermRepo
	cache    *memCache
	corpus   *Corpus
	ledger   *Ledger
	search   *SearchEngine
	curation *Curation
}

func newFixture(sections ...*Section) *fixture {
	f := &fixture{
		sections: newMemSectionRepo(sections...),
		terms:    newMemTermRepo(),
		cache:    &memCache{},
	}

	fallback, err := BuiltinDataset()
	if err != nil {
		panic(err)
	}

	logger := discardLogger()
	f.corpus = NewCorpus(f.sections, f.cache, fallback, logger)
	f.ledger = NewLedger(f.terms, logger)
	f.search = NewSearchEngine(f.corpus, f.ledger, logger)
	f.curation = NewCuration(f.corpus, f.ledger, logger)
	return f
}
