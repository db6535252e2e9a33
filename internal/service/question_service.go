package service

import (
	"context"
	"fmt"

	"feudlive/internal/model"
	"feudlive/internal/repository"
)

// QuestionService handles question bank management
type QuestionService struct {
	questionRepo repository.QuestionRepo
}

// NewQuestionService creates a new question service
func NewQuestionService(questionRepo repository.QuestionRepo) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// CreateQuestion stores a new question with its answer board.
func (s *QuestionService) CreateQuestion(ctx context.Context, question *model.Question) (*model.Question, error) {
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestion returns a question by id.
func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

// GetAllQuestions lists the whole bank.
func (s *QuestionService) GetAllQuestions(ctx context.Context) ([]*model.Question, error) {
	return s.questionRepo.FindAll(ctx)
}

// UpdateQuestion replaces a question's text and answers.
func (s *QuestionService) UpdateQuestion(ctx context.Context, question *model.Question) (*model.Question, error) {
	existing, err := s.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if existing == nil {
		return nil, ErrQuestionNotFound
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion removes a question from the bank. Games already holding it
// keep their embedded copy for the round.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	existing, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if existing == nil {
		return ErrQuestionNotFound
	}
	return s.questionRepo.Delete(ctx, id)
}
