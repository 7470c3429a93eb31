package assessment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fullSample = `function sumPositive(values) {
  let total = 0;
  for (const v of values) {
    if (v > 0) {
      total += v;
    }
  }
  return total;
}`

func TestEvaluateCode_EmptyInput(t *testing.T) {
	for _, code := range []string{"", "   ", "\n\t\n"} {
		assert.Equal(t, 0, EvaluateCode(code), "%q", code)
	}
}

func TestEvaluateCode_Bands(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		atLeast int
		below   int
	}{
		{name: "all signals", code: fullSample, atLeast: 80, below: 101},
		{name: "single statement", code: "x = 5", atLeast: 0, below: 40},
		{name: "function and return only", code: "def double(x):\n    return x * 2", atLeast: 40, below: 80},
		{
			name:    "go function with return and no control flow",
			code:    "func double(x int) int {\n\ty := x * 2\n\treturn y\n}",
			atLeast: 40,
			below:   80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCode(tt.code)
			assert.GreaterOrEqual(t, got, tt.atLeast)
			assert.Less(t, got, tt.below)
		})
	}
}

func TestEvaluateCode_Deterministic(t *testing.T) {
	first := EvaluateCode(fullSample)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EvaluateCode(fullSample))
	}
}

func TestEvaluateCode_OddInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		strings.Repeat(fullSample+"\n", 5000),
		"const greeting = \"こんにちは 🌍\";",
		`const q = "SELECT * FROM users WHERE id = 1"; const html = "<div>hi</div>";`,
	}
	for _, code := range inputs {
		assert.NotPanics(t, func() {
			got := EvaluateCode(code)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, MaxScore)
		})
	}
}

func TestEvaluate_SignalBreakdown(t *testing.T) {
	score, signals := Evaluate(fullSample)
	assert.Len(t, signals, len(signalChecks))

	sum := 0
	for _, s := range signals {
		assert.True(t, s.Passed, s.Name)
		assert.Equal(t, s.MaxPoints, s.Points)
		sum += s.Points
	}
	assert.Equal(t, sum, score)
	assert.Equal(t, 100, score)

	_, empty := Evaluate("")
	assert.Len(t, empty, len(signalChecks))
	for _, s := range empty {
		assert.False(t, s.Passed)
	}
}
