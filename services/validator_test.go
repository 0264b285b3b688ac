package services

import (
	"testing"

	"shadow-ranch-system/models"
)

func newValidator() *AnswerValidator {
	return NewAnswerValidator(NewContentService())
}

func TestValidateQuizTextInput(t *testing.T) {
	v := newValidator()
	q := models.QuizDefinition{Kind: models.QuizTextInput, CorrectAnswer: "msg!"}

	cases := []struct {
		name   string
		answer string
		want   bool
	}{
		{"exact", "msg!", true},
		{"leading and trailing whitespace", "  msg!  ", true},
		{"different case", "MSG!", true},
		{"case and whitespace", "\tMsg! \n", true},
		{"wrong answer", "println!", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ValidateQuiz(tc.answer, q); got != tc.want {
				t.Errorf("ValidateQuiz(%q) = %v, want %v", tc.answer, got, tc.want)
			}
		})
	}
}

func TestValidateQuizMultipleChoice(t *testing.T) {
	v := newValidator()
	q := models.QuizDefinition{
		Kind:          models.QuizMultipleChoice,
		Options:       []string{"A private key", "Seeds and a program id"},
		CorrectAnswer: "Seeds and a program id",
	}

	if !v.ValidateQuiz("Seeds and a program id", q) {
		t.Error("correct option text should pass")
	}
	if v.ValidateQuiz("A private key", q) {
		t.Error("wrong option should fail")
	}
	if v.ValidateQuiz("seeds and a program id", q) {
		t.Error("multiple choice compares option text verbatim")
	}
}

func TestValidateQuizTrueFalse(t *testing.T) {
	v := newValidator()
	q := models.QuizDefinition{Kind: models.QuizTrueFalse, CorrectAnswer: "false"}

	for _, answer := range []string{"false", "False", " FALSE "} {
		if !v.ValidateQuiz(answer, q) {
			t.Errorf("ValidateQuiz(%q) should pass", answer)
		}
	}
	if v.ValidateQuiz("true", q) {
		t.Error("opposite boolean should fail")
	}
}

func TestValidateQuizUnknownKindFailsClosed(t *testing.T) {
	v := newValidator()
	q := models.QuizDefinition{Kind: "essay", CorrectAnswer: "anything"}

	if v.ValidateQuiz("anything", q) {
		t.Error("unknown quiz kind must never pass")
	}
}

func TestValidateCodePatternSpansLines(t *testing.T) {
	v := newValidator()
	content := NewContentService()
	ch, err := content.GetChallenge(3)
	if err != nil {
		t.Fatalf("GetChallenge(3): %v", err)
	}

	code := `#[account]
pub struct ChyronAccount {
    pub message: String,
}`
	if !v.ValidateCode(code, ch) {
		t.Error("pattern must match across newlines")
	}

	if v.ValidateCode("#[account]\npub struct Other {}", ch) {
		t.Error("unrelated struct should fail")
	}
}

func TestValidateCodeCaseSensitive(t *testing.T) {
	v := newValidator()
	content := NewContentService()
	ch, _ := content.GetChallenge(1)

	if !v.ValidateCode("pub mod my_chyron {", ch) {
		t.Error("expected rename to pass")
	}
	if v.ValidateCode("PUB MOD MY_CHYRON {", ch) {
		t.Error("code matching is case-sensitive")
	}
	if v.ValidateCode("pub mod genesis {", ch) {
		t.Error("unrenamed program should fail")
	}
}

func TestValidateCodeWithoutRuleFails(t *testing.T) {
	v := newValidator()
	ch := models.ChallengeDefinition{ID: 99, Title: "Narrative Only"}

	if v.ValidateCode("anything at all", ch) {
		t.Error("challenge without a rule can never be passed")
	}
}

func TestPatternRuleRejectsBadExpression(t *testing.T) {
	if _, err := NewPatternRule(`pub\s+mod\s+(`); err == nil {
		t.Error("expected compile error for unbalanced pattern")
	}
}

func TestEveryAuthoredChallengeHasRule(t *testing.T) {
	v := newValidator()
	for _, ch := range NewContentService().ListChallenges() {
		if _, ok := v.rules[ch.ID]; !ok {
			t.Errorf("challenge %d (%s) has no compiled rule", ch.ID, ch.Title)
		}
	}
}
