package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"shadow-ranch-system/models"
)

// CodeRule decides whether a submitted code snippet satisfies a challenge.
// The stock implementation is a structural pattern match; keeping it behind
// an interface lets a real parser/AST check slot in without touching the
// reward coordinator.
type CodeRule interface {
	Matches(code string) bool
}

// PatternRule matches the whole submission against a structural expression.
// Compiled with (?s) so the rule spans newlines: submissions are whole-file
// snippets, not single lines. Case-sensitive.
type PatternRule struct {
	re *regexp.Regexp
}

func NewPatternRule(expr string) (*PatternRule, error) {
	re, err := regexp.Compile("(?s)" + expr)
	if err != nil {
		return nil, err
	}
	return &PatternRule{re: re}, nil
}

func (r *PatternRule) Matches(code string) bool {
	return r.re.MatchString(code)
}

// exactRule passes only when the submission, whitespace-trimmed, equals the
// authored expected code.
type exactRule struct {
	expected string
}

func (r exactRule) Matches(code string) bool {
	return strings.TrimSpace(code) == strings.TrimSpace(r.expected)
}

// AnswerValidator is a pure decision function over (submission, definition).
// It never errors: a malformed or missing rule is a failed validation.
type AnswerValidator struct {
	fold  cases.Caser
	rules map[int]CodeRule // challenge id → compiled rule
}

func NewAnswerValidator(content *ContentService) *AnswerValidator {
	v := &AnswerValidator{
		fold:  cases.Fold(),
		rules: make(map[int]CodeRule),
	}
	for _, ch := range content.ListChallenges() {
		if rule := ruleForChallenge(ch); rule != nil {
			v.rules[ch.ID] = rule
		}
	}
	return v
}

func ruleForChallenge(ch models.ChallengeDefinition) CodeRule {
	if ch.Pattern != "" {
		rule, err := NewPatternRule(ch.Pattern)
		if err != nil {
			// Authored pattern does not compile: the challenge cannot be
			// passed automatically, same as having no rule at all.
			return nil
		}
		return rule
	}
	if ch.ExpectedCode != "" {
		return exactRule{expected: ch.ExpectedCode}
	}
	return nil
}

// ValidateQuiz checks a quiz submission against its definition.
// Text input is compared case-folded and whitespace-trimmed on both sides;
// multiple choice compares the selected option text; true/false compares the
// stringified boolean. An unknown kind fails closed.
func (v *AnswerValidator) ValidateQuiz(answer string, q models.QuizDefinition) bool {
	switch q.Kind {
	case models.QuizTextInput:
		return v.fold.String(strings.TrimSpace(answer)) == v.fold.String(strings.TrimSpace(q.CorrectAnswer))
	case models.QuizMultipleChoice:
		return answer == q.CorrectAnswer
	case models.QuizTrueFalse:
		return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(q.CorrectAnswer)
	default:
		return false
	}
}

// ValidateCode returns true iff the submission satisfies the challenge's
// rule. A challenge without a checkable rule can never be passed
// automatically; it is non-interactive content.
func (v *AnswerValidator) ValidateCode(code string, ch models.ChallengeDefinition) bool {
	rule, ok := v.rules[ch.ID]
	if !ok {
		return false
	}
	return rule.Matches(code)
}
