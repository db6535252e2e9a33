package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"feudlive/internal/model"
)

func newTestSyncService(t *testing.T, handler http.HandlerFunc, questions []*model.Question, repo *fakeSynonymRepo) *SynonymSyncService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewSynonymSyncService(&fakeQuestionRepo{questions: questions}, repo)
	svc.httpClient = server.Client()
	svc.baseURL = server.URL
	return svc
}

func TestFetchSynonyms(t *testing.T) {
	svc := newTestSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rel_syn"); got != "car" {
			t.Errorf("rel_syn = %q, want %q", got, "car")
		}
		fmt.Fprint(w, `[{"word":"Automobile","score":1000},{"word":"auto","score":900},{"word":"  "}]`)
	}, nil, &fakeSynonymRepo{})

	got := svc.FetchSynonyms(context.Background(), "car")
	want := []string{"automobile", "auto"}
	if len(got) != len(want) {
		t.Fatalf("FetchSynonyms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FetchSynonyms = %v, want %v", got, want)
		}
	}
}

func TestFetchSynonymsBadPayloadDegrades(t *testing.T) {
	svc := newTestSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}, nil, &fakeSynonymRepo{})

	if got := svc.FetchSynonyms(context.Background(), "car"); got != nil {
		t.Fatalf("expected nil on bad payload, got %v", got)
	}
}

func TestSyncAllAnswerSynonymsSkipsExistingEntries(t *testing.T) {
	questions := []*model.Question{
		{
			ID:   "q1",
			Text: "Name something people ride to work",
			Answers: []model.Answer{
				{ID: "a1", Text: "Car", Points: 40},
				{ID: "a2", Text: "Bike", Points: 20},
				{ID: "a3", Text: " car ", Points: 10}, // dedupes with Car
			},
		},
	}
	repo := &fakeSynonymRepo{entries: map[string][]string{
		"car": {"automobile"},
	}}

	svc := newTestSyncService(t, func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Query().Get("rel_syn")
		fmt.Fprintf(w, `[{"word":"%s-syn"}]`, word)
	}, questions, repo)

	synced, err := svc.SyncAllAnswerSynonyms(context.Background())
	if err != nil {
		t.Fatalf("SyncAllAnswerSynonyms: %v", err)
	}

	var words []string
	for w := range synced {
		words = append(words, w)
	}
	sort.Strings(words)
	if len(words) != 1 || words[0] != "bike" {
		t.Fatalf("expected only bike to sync, got %v", words)
	}
	if got := repo.entries["bike"]; len(got) != 1 || got[0] != "bike-syn" {
		t.Fatalf("expected bike entry persisted, got %v", got)
	}
	if got := repo.entries["car"]; len(got) != 1 || got[0] != "automobile" {
		t.Fatalf("expected existing car entry untouched, got %v", got)
	}
}
