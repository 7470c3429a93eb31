package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"techsync/internal/domain/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCode = `def total(xs):
    s = 0
    for x in xs:
        if x > 0:
            s += x
    return s
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { evaluatePlain = false })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.py")
	require.NoError(t, os.WriteFile(path, []byte(sampleCode), 0o600))

	out, err := runCLI(t, "", "evaluate", "--plain", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 100/100 (min 70) PASSED")
	assert.Contains(t, out, "Tier: excellent")
	assert.Contains(t, out, "✓ loop")
}

func TestEvaluate_FromStdin(t *testing.T) {
	out, err := runCLI(t, "x = 5", "evaluate", "--plain", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 0/100 (min 70) FAILED")
	assert.Contains(t, out, "✗ function definition")
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := runCLI(t, "", "evaluate", "--plain", "--file", filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)

	t.Setenv("MIN_PASSING_SCORE", "101")
	_, err = runCLI(t, "return 1", "evaluate", "--plain", "--file", "-")
	assert.ErrorIs(t, err, assessment.ErrInvalidPassingScore)
}

func TestEvaluate_PassingScoreFromEnv(t *testing.T) {
	t.Setenv("MIN_PASSING_SCORE", "40")

	out, err := runCLI(t, "func f(x int) int {\n\treturn x\n}", "evaluate", "--plain", "--file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "(min 40)")
}

func TestRenderReport_Colored(t *testing.T) {
	a, err := assessment.NewAssessor(assessment.DefaultMinPassingScore)
	require.NoError(t, err)
	out := renderReport(a.Assess(assessment.Submission{Code: sampleCode}), 70, true)
	assert.Contains(t, out, "100/100")
	assert.Contains(t, out, "loop")
}
