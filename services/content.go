package services

import (
	"shadow-ranch-system/models"
)

// ContentService is the in-memory, read-only catalogue of challenge and quiz
// definitions, loaded wholesale from the authored content at startup.
type ContentService struct {
	challenges map[int]models.ChallengeDefinition
	quizzes    map[int]models.QuizDefinition
	ordered    []models.ChallengeDefinition
}

func NewContentService() *ContentService {
	s := &ContentService{
		challenges: make(map[int]models.ChallengeDefinition, len(models.SolanaChallenges)),
		quizzes:    make(map[int]models.QuizDefinition, len(models.CypherpunkQuizzes)),
		ordered:    models.SolanaChallenges,
	}
	for _, ch := range models.SolanaChallenges {
		s.challenges[ch.ID] = ch
	}
	for _, q := range models.CypherpunkQuizzes {
		s.quizzes[q.ID] = q
	}
	return s
}

func (s *ContentService) GetChallenge(id int) (models.ChallengeDefinition, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return models.ChallengeDefinition{}, ErrChallengeNotFound
	}
	return ch, nil
}

func (s *ContentService) GetQuiz(id int) (models.QuizDefinition, error) {
	q, ok := s.quizzes[id]
	if !ok {
		return models.QuizDefinition{}, ErrQuizNotFound
	}
	return q, nil
}

func (s *ContentService) ListChallenges() []models.ChallengeDefinition {
	return s.ordered
}

// ChallengesForModule returns the four challenges belonging to a module, in
// curriculum order.
func (s *ContentService) ChallengesForModule(moduleID int) []models.ChallengeDefinition {
	var out []models.ChallengeDefinition
	for _, bit := range models.ModuleChallengeIDs(moduleID) {
		if ch, ok := s.challenges[bit+1]; ok {
			out = append(out, ch)
		}
	}
	return out
}
