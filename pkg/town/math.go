package town

import (
	"fmt"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
)

const (
	MathProblems        = 10
	MathCoinsPerCorrect = 2

	OpAddition    = "addition"
	OpSubtraction = "subtraction"
)

// MathResult is the outcome of one answer.
type MathResult struct {
	Correct  bool   `json:"correct"`
	Expected int    `json:"expected"`
	Coins    int    `json:"coins"`
	Bonus    int    `json:"bonus,omitempty"`
	Done     bool   `json:"done"`
	Message  string `json:"message"`
	Question string `json:"question,omitempty"`
}

// StartMath begins a fresh quiz with its first problem.
func StartMath(mg *state.MathGame, r actor.Rand) {
	*mg = state.MathGame{Active: true}
	nextProblem(mg, r)
}

func nextProblem(mg *state.MathGame, r actor.Rand) {
	if r.IntN(2) == 0 {
		mg.Operation = OpAddition
		mg.Num1 = actor.RandomBetween(r, 1, 10)
		mg.Num2 = actor.RandomBetween(r, 1, 10)
		mg.Answer = mg.Num1 + mg.Num2
		return
	}
	mg.Operation = OpSubtraction
	mg.Num1 = actor.RandomBetween(r, 5, 19)
	mg.Num2 = actor.RandomBetween(r, 1, mg.Num1)
	mg.Answer = mg.Num1 - mg.Num2
}

// Question renders the current problem.
func Question(mg state.MathGame) string {
	op := "+"
	if mg.Operation == OpSubtraction {
		op = "-"
	}
	return fmt.Sprintf("%d %s %d = ?", mg.Num1, op, mg.Num2)
}

// AnswerMath scores an answer and moves on. Coins are returned for the
// caller to pay; the final answer also carries the accuracy bonus.
func AnswerMath(mg *state.MathGame, answer int, r actor.Rand) (MathResult, error) {
	if !mg.Active {
		return MathResult{}, fmt.Errorf("no math game in progress")
	}
	res := MathResult{Expected: mg.Answer}
	mg.Asked++
	if answer == mg.Answer {
		mg.Correct++
		res.Correct = true
		res.Coins = MathCoinsPerCorrect
		res.Message = fmt.Sprintf("Correct! +%d coins", MathCoinsPerCorrect)
	} else {
		res.Message = fmt.Sprintf("Not quite. The answer was %d.", mg.Answer)
	}

	if mg.Asked >= MathProblems {
		res.Done = true
		res.Bonus = MathBonus(mg.Correct, mg.Asked)
		mg.Active = false
		res.Message = fmt.Sprintf("%s You got %d of %d right!", res.Message, mg.Correct, mg.Asked)
		if res.Bonus > 0 {
			res.Message = fmt.Sprintf("%s Bonus: %d coins!", res.Message, res.Bonus)
		}
	} else {
		nextProblem(mg, r)
		res.Question = Question(*mg)
	}
	mg.Earned += res.Coins + res.Bonus
	return res, nil
}

// MathBonus pays 10, 5 or 2 coins for at least 90, 70 or 50 percent correct.
func MathBonus(correct, asked int) int {
	if asked == 0 {
		return 0
	}
	pct := correct * 100 / asked
	switch {
	case pct >= 90:
		return 10
	case pct >= 70:
		return 5
	case pct >= 50:
		return 2
	default:
		return 0
	}
}
