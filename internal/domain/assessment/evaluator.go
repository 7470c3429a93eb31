package assessment

import (
	"regexp"
	"strings"
)

const (
	MaxScore = 100

	minNonBlankLines = 3
)

// Signal is one structural check applied to a submission.
type Signal struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
	Passed    bool   `json:"passed"`
}

type signalCheck struct {
	name   string
	points int
	match  func(code string, lines int) bool
}

func pattern(expr string) func(string, int) bool {
	re := regexp.MustCompile(expr)
	return func(code string, _ int) bool {
		return re.MatchString(code)
	}
}

// The checks are plain pattern counts over the source text. Nothing is parsed or executed.
var signalChecks = []signalCheck{
	{
		name:   "function definition",
		points: 25,
		match:  pattern(`\bfunc\b|\bfunction\b|\bdef\s+\w+|\bfn\s+\w+|=>|\b(?:public|private|protected|static)\s+[\w<>\[\]]+\s+\w+\s*\(`),
	},
	{
		name:   "return statement",
		points: 20,
		match:  pattern(`\breturn\b|\byield\b`),
	},
	{
		name:   "conditional",
		points: 20,
		match:  pattern(`\bif\b|\bswitch\b|\bcase\b|\belse\b|\belif\b|\bmatch\s*\(`),
	},
	{
		name:   "loop",
		points: 20,
		match:  pattern(`\bfor\b|\bwhile\b|\bloop\b|\.forEach\s*\(|\.map\s*\(`),
	},
	{
		name:   "sufficient length",
		points: 15,
		match: func(_ string, lines int) bool {
			return lines > minNonBlankLines
		},
	},
}

// EvaluateCode returns the heuristic quality score for code. Blank input scores 0.
func EvaluateCode(code string) int {
	score, _ := Evaluate(code)
	return score
}

// Evaluate returns the score together with the per-signal breakdown.
func Evaluate(code string) (int, []Signal) {
	signals := make([]Signal, 0, len(signalChecks))
	if strings.TrimSpace(code) == "" {
		for _, c := range signalChecks {
			signals = append(signals, Signal{Name: c.name, MaxPoints: c.points})
		}
		return 0, signals
	}

	lines := countNonBlankLines(code)
	total := 0
	for _, c := range signalChecks {
		s := Signal{Name: c.name, MaxPoints: c.points}
		if c.match(code, lines) {
			s.Points = c.points
			s.Passed = true
			total += c.points
		}
		signals = append(signals, s)
	}
	if total > MaxScore {
		total = MaxScore
	}
	return total, signals
}

func countNonBlankLines(code string) int {
	n := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
