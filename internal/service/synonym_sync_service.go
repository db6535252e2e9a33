package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"feudlive/internal/model"
	"feudlive/internal/repository"
)

const datamuseURL = "https://api.datamuse.com/words"

// SynonymSyncService fills the synonym dictionary offline from the Datamuse
// API so live matching never waits on a third-party lookup.
type SynonymSyncService struct {
	questionRepo repository.QuestionRepo
	synonymRepo  repository.SynonymRepo
	httpClient   *http.Client
	baseURL      string
}

// NewSynonymSyncService creates a new synonym sync service
func NewSynonymSyncService(questionRepo repository.QuestionRepo, synonymRepo repository.SynonymRepo) *SynonymSyncService {
	return &SynonymSyncService{
		questionRepo: questionRepo,
		synonymRepo:  synonymRepo,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      datamuseURL,
	}
}

// FetchSynonyms queries Datamuse for rel_syn variants of a word. Failures
// degrade to an empty list so a flaky upstream never blocks a sync run.
func (s *SynonymSyncService) FetchSynonyms(ctx context.Context, word string) []string {
	reqURL := fmt.Sprintf("%s?rel_syn=%s", s.baseURL, url.QueryEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Synonym fetch for %q failed: %v", word, err)
		return nil
	}
	defer resp.Body.Close()

	var results []struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("Synonym fetch for %q returned bad payload: %v", word, err)
		return nil
	}

	synonyms := make([]string, 0, len(results))
	for _, r := range results {
		if v := Normalize(r.Word); v != "" {
			synonyms = append(synonyms, v)
		}
	}
	return synonyms
}

// SyncAllAnswerSynonyms fetches and persists synonyms for every distinct
// answer word in the bank that has no dictionary entry yet. Returns the
// newly synced entries.
func (s *SynonymSyncService) SyncAllAnswerSynonyms(ctx context.Context) (map[string][]string, error) {
	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	canonicalWords := make(map[string]bool)
	for _, q := range questions {
		for _, a := range q.Answers {
			if w := Normalize(a.Text); w != "" {
				canonicalWords[w] = true
			}
		}
	}

	result := make(map[string][]string)
	for word := range canonicalWords {
		existing, err := s.synonymRepo.FindByCanonical(ctx, word)
		if err != nil {
			return result, fmt.Errorf("failed to check dictionary for %q: %w", word, err)
		}
		if existing != nil {
			continue
		}

		synonyms := s.FetchSynonyms(ctx, word)
		entry := &model.SynonymEntry{
			Canonical: word,
			Synonyms:  synonyms,
		}
		if err := s.synonymRepo.Upsert(ctx, entry); err != nil {
			return result, fmt.Errorf("failed to save synonyms for %q: %w", word, err)
		}
		result[word] = synonyms
	}
	return result, nil
}
