package service

import (
	"context"
	"strings"

	"feudlive/internal/repository"
)

// SynonymService resolves a word to its normalized synonym set.
type SynonymService struct {
	synonymRepo repository.SynonymRepo
}

// NewSynonymService creates a new synonym service
func NewSynonymService(synonymRepo repository.SynonymRepo) *SynonymService {
	return &SynonymService{synonymRepo: synonymRepo}
}

// Normalize returns the canonical form of a word: trimmed and lowercased.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// GetAllSynonyms returns the normalized word plus any dictionary-registered
// variants. A missing dictionary entry (or a failed lookup) degrades to the
// singleton set containing just the normalized word, never an error.
func (s *SynonymService) GetAllSynonyms(ctx context.Context, word string) map[string]bool {
	result := make(map[string]bool)
	normalized := Normalize(word)
	if normalized == "" {
		return result
	}
	result[normalized] = true

	entry, err := s.synonymRepo.FindByCanonical(ctx, normalized)
	if err != nil || entry == nil {
		return result
	}
	for _, syn := range entry.Synonyms {
		if v := Normalize(syn); v != "" {
			result[v] = true
		}
	}
	return result
}

// AreSynonyms holds iff the two words' synonym sets intersect. The relation
// is reflexive and symmetric; it is not transitive, because sets are looked
// up independently per word.
func (s *SynonymService) AreSynonyms(ctx context.Context, word1, word2 string) bool {
	syns1 := s.GetAllSynonyms(ctx, word1)
	syns2 := s.GetAllSynonyms(ctx, word2)
	for w := range syns1 {
		if syns2[w] {
			return true
		}
	}
	return false
}
