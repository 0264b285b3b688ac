package models

// QuizKind is the closed set of quiz question types. Validation dispatches
// exhaustively on this; a kind outside the set fails closed.
type QuizKind string

const (
	QuizTextInput      QuizKind = "text-input"
	QuizMultipleChoice QuizKind = "multiple-choice"
	QuizTrueFalse      QuizKind = "true-false"
)

// QuizDefinition: static authored quiz content, immutable after load.
type QuizDefinition struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	Kind           QuizKind `json:"kind"`
	Options        []string `json:"options,omitempty"` // multiple-choice only
	CorrectAnswer  string   `json:"-"`                 // text-input / multiple-choice option text / "true"|"false"
	SuccessMessage string   `json:"-"`
	FailureMessage string   `json:"-"`
}

// CypherpunkQuizzes is the knowledge-check catalogue for the narrative lessons.
var CypherpunkQuizzes = []QuizDefinition{
	{
		ID:             1,
		Question:       "What year was 'A Cypherpunk's Manifesto' published?",
		Kind:           QuizTextInput,
		CorrectAnswer:  "1993",
		SuccessMessage: "Eric Hughes would be proud.",
		FailureMessage: "Check the manifesto's opening lines again.",
	},
	{
		ID:       2,
		Question: "Which of these is the core claim of the manifesto?",
		Kind:     QuizMultipleChoice,
		Options: []string{
			"Privacy is secrecy",
			"Privacy is the power to selectively reveal oneself to the world",
			"Privacy is obsolete",
			"Privacy belongs to institutions",
		},
		CorrectAnswer:  "Privacy is the power to selectively reveal oneself to the world",
		SuccessMessage: "Exactly — selective revelation, not secrecy.",
		FailureMessage: "Privacy and secrecy are not the same thing. Read again.",
	},
	{
		ID:             3,
		Question:       "True or false: Solana programs store their own state directly inside the program account.",
		Kind:           QuizTrueFalse,
		CorrectAnswer:  "false",
		SuccessMessage: "Right — state lives in separate accounts.",
		FailureMessage: "Programs are stateless; accounts hold the data.",
	},
	{
		ID:             4,
		Question:       "What macro does an Anchor program use to log a message?",
		Kind:           QuizTextInput,
		CorrectAnswer:  "msg!",
		SuccessMessage: "msg! it is.",
		FailureMessage: "It's a macro, and it ends with an exclamation mark.",
	},
	{
		ID:       5,
		Question: "A PDA is derived from:",
		Kind:     QuizMultipleChoice,
		Options: []string{
			"A private key",
			"Seeds and a program id",
			"A wallet signature",
			"The slot number",
		},
		CorrectAnswer:  "Seeds and a program id",
		SuccessMessage: "Seeds plus program id — no private key anywhere.",
		FailureMessage: "PDAs deliberately have no private key.",
	},
	{
		ID:             6,
		Question:       "True or false: the double-spend problem is what blockchains were invented to solve without a trusted third party.",
		Kind:           QuizTrueFalse,
		CorrectAnswer:  "true",
		SuccessMessage: "That's the heart of it.",
		FailureMessage: "Think about what Satoshi's whitepaper actually solved.",
	},
}
