package service

import (
	"context"
	"strings"
)

// AnswerChecker decides whether a free-text guess matches an answer slot.
// Pure: it never mutates anything, and is used identically for controlling
// guesses and steal attempts.
type AnswerChecker struct {
	synonymSvc *SynonymService
}

// NewAnswerChecker creates a new answer checker
func NewAnswerChecker(synonymSvc *SynonymService) *AnswerChecker {
	return &AnswerChecker{synonymSvc: synonymSvc}
}

// Matches reports whether the guess equals the answer text
// case-insensitively or is a registered synonym of it. Empty input on
// either side never matches.
func (c *AnswerChecker) Matches(ctx context.Context, answerText, guess string) bool {
	if strings.TrimSpace(answerText) == "" || strings.TrimSpace(guess) == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(answerText), strings.TrimSpace(guess)) {
		return true
	}
	return c.synonymSvc.AreSynonyms(ctx, answerText, guess)
}
