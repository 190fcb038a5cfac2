package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// AllCategories selects from every question.
const AllCategories = 0

type questionLister interface {
	List(ctx context.Context) ([]trivia.Question, error)
}

type sessionStore interface {
	Seen(ctx context.Context, id uuid.UUID) ([]int, error)
	Record(ctx context.Context, id uuid.UUID, questionID int) error
	Reset(ctx context.Context, id uuid.UUID) error
}

// DrawInput describes one quiz request.
type DrawInput struct {
	PreviousIDs []int
	CategoryID  int
	// SessionID names a server-side session; empty means stateless.
	SessionID string
	// NewSession asks for a fresh session when SessionID is empty.
	NewSession bool
	Reset      bool
}

// DrawResult carries the next question, or nil once the quiz is exhausted.
type DrawResult struct {
	Question  *trivia.Question
	SessionID string
}

// Service draws random unseen questions.
type Service struct {
	questions questionLister
	sessions  sessionStore
	selector  *trivia.Selector
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewService wires the quiz service. sessions and m may be nil; without a
// session store every request is stateless.
func NewService(questions questionLister, sessions sessionStore, selector *trivia.Selector, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if selector == nil {
		selector = trivia.NewSelector(nil)
	}
	return &Service{
		questions: questions,
		sessions:  sessions,
		selector:  selector,
		metrics:   m,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

// Draw picks the next question. Running out of questions, including asking
// for a category with no questions, is a successful nil result.
func (s *Service) Draw(ctx context.Context, in DrawInput) (DrawResult, error) {
	if in.CategoryID < 0 {
		return DrawResult{}, fmt.Errorf("quiz category %d: %w", in.CategoryID, trivia.ErrInvalidInput)
	}

	sessionID, err := s.resolveSession(in)
	if err != nil {
		return DrawResult{}, err
	}

	previous := in.PreviousIDs
	if sessionID != uuid.Nil {
		if in.Reset {
			if err := s.sessions.Reset(ctx, sessionID); err != nil {
				s.metrics.ObserveQuiz(metrics.QuizFailed)
				return DrawResult{}, fmt.Errorf("%w: %v", trivia.ErrUnprocessable, err)
			}
		} else {
			seen, err := s.sessions.Seen(ctx, sessionID)
			if err != nil {
				s.metrics.ObserveQuiz(metrics.QuizFailed)
				return DrawResult{}, fmt.Errorf("%w: %v", trivia.ErrUnprocessable, err)
			}
			previous = append(append([]int(nil), previous...), seen...)
		}
	}

	all, err := s.questions.List(ctx)
	if err != nil {
		s.metrics.ObserveQuiz(metrics.QuizFailed)
		return DrawResult{}, err
	}
	candidates := all
	if in.CategoryID != AllCategories {
		candidates = trivia.InCategory(all, in.CategoryID)
	}

	result := DrawResult{}
	if sessionID != uuid.Nil {
		result.SessionID = sessionID.String()
	}

	next, ok := s.selector.Next(candidates, previous)
	if !ok {
		s.metrics.ObserveQuiz(metrics.QuizExhausted)
		s.logger.Debug().
			Int("category_id", in.CategoryID).
			Int("previous", len(previous)).
			Msg("quiz exhausted")
		return result, nil
	}

	if sessionID != uuid.Nil {
		if err := s.sessions.Record(ctx, sessionID, next.ID); err != nil {
			// the client still gets its question; the session just forgets it
			s.logger.Warn().Err(err).Str("session_id", result.SessionID).Int("question_id", next.ID).Msg("record quiz draw failed")
		}
	}

	s.metrics.ObserveQuiz(metrics.QuizServed)
	result.Question = &next
	return result, nil
}

func (s *Service) resolveSession(in DrawInput) (uuid.UUID, error) {
	if s.sessions == nil {
		return uuid.Nil, nil
	}
	if in.SessionID != "" {
		id, err := uuid.Parse(in.SessionID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("session_id %q: %w", in.SessionID, trivia.ErrInvalidInput)
		}
		return id, nil
	}
	if in.NewSession {
		return uuid.New(), nil
	}
	return uuid.Nil, nil
}
