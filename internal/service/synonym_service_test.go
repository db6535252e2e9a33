package service

import (
	"context"
	"testing"

	"feudlive/internal/model"
)

// fakeSynonymRepo is an in-memory synonym dictionary for tests.
type fakeSynonymRepo struct {
	entries map[string][]string
}

func (f *fakeSynonymRepo) Upsert(ctx context.Context, entry *model.SynonymEntry) error {
	if f.entries == nil {
		f.entries = make(map[string][]string)
	}
	f.entries[entry.Canonical] = entry.Synonyms
	return nil
}

func (f *fakeSynonymRepo) FindByCanonical(ctx context.Context, canonical string) (*model.SynonymEntry, error) {
	syns, ok := f.entries[canonical]
	if !ok {
		return nil, nil
	}
	return &model.SynonymEntry{Canonical: canonical, Synonyms: syns}, nil
}

func (f *fakeSynonymRepo) Delete(ctx context.Context, canonical string) error {
	delete(f.entries, canonical)
	return nil
}

func (f *fakeSynonymRepo) FindAll(ctx context.Context) ([]*model.SynonymEntry, error) {
	var entries []*model.SynonymEntry
	for canonical, syns := range f.entries {
		entries = append(entries, &model.SynonymEntry{Canonical: canonical, Synonyms: syns})
	}
	return entries, nil
}

func (f *fakeSynonymRepo) DeleteAll(ctx context.Context) error {
	f.entries = make(map[string][]string)
	return nil
}

func newTestSynonymService(entries map[string][]string) *SynonymService {
	return NewSynonymService(&fakeSynonymRepo{entries: entries})
}

func TestGetAllSynonymsIncludesNormalizedWord(t *testing.T) {
	svc := newTestSynonymService(map[string][]string{
		"car": {"automobile", "vehicle"},
	})

	syns := svc.GetAllSynonyms(context.Background(), "  Car ")
	if !syns["car"] {
		t.Fatalf("expected set to contain the normalized word, got %v", syns)
	}
	if !syns["automobile"] || !syns["vehicle"] {
		t.Fatalf("expected dictionary variants, got %v", syns)
	}
	if len(syns) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(syns))
	}
}

func TestGetAllSynonymsMissDegradesToSingleton(t *testing.T) {
	svc := newTestSynonymService(nil)

	syns := svc.GetAllSynonyms(context.Background(), "Banana")
	if len(syns) != 1 || !syns["banana"] {
		t.Fatalf("expected singleton {banana}, got %v", syns)
	}
}

func TestAreSynonymsReflexive(t *testing.T) {
	svc := newTestSynonymService(nil)

	for _, word := range []string{"car", "Bike", "  truck  "} {
		if !svc.AreSynonyms(context.Background(), word, word) {
			t.Fatalf("expected %q to be a synonym of itself", word)
		}
	}
}

func TestAreSynonymsSymmetric(t *testing.T) {
	svc := newTestSynonymService(map[string][]string{
		"car": {"automobile"},
	})

	cases := []struct {
		a, b string
		want bool
	}{
		{"car", "automobile", true},
		{"automobile", "car", true},
		{"car", "bike", false},
		{"bike", "car", false},
	}
	for _, tc := range cases {
		if got := svc.AreSynonyms(context.Background(), tc.a, tc.b); got != tc.want {
			t.Fatalf("AreSynonyms(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAreSynonymsNotTransitive(t *testing.T) {
	// car ~ automobile and auto ~ automobile, but car and auto only relate
	// through the shared variant, which the pairwise sets do expose; two
	// entries with disjoint variants stay unrelated.
	svc := newTestSynonymService(map[string][]string{
		"car":  {"automobile"},
		"bike": {"bicycle"},
	})

	if svc.AreSynonyms(context.Background(), "automobile", "bicycle") {
		t.Fatal("expected variants of different entries to stay unrelated")
	}
}
