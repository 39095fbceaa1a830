package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func decode(t *testing.T, s string) solution {
	t.Helper()
	var sol solution
	require.NoError(t, json.Unmarshal([]byte(s), &sol))
	return sol
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "segsum "+version+"\n", stdout)
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: segsum")

	code, _, stderr = runCLI(t, "", "train")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "train"`)
}

func TestRun_Basic(t *testing.T) {
	in := `{"x": [1, 2, 3, 4], "ids": [1, 2, 0, 1], "num_segments": 3}`

	code, stdout, stderr := runCLI(t, in, "run")
	require.Equal(t, 0, code, stderr)

	sol := decode(t, stdout)
	assert.Equal(t, "CPU", sol.Backend)
	assert.Equal(t, []float64{3, 5, 2}, sol.Output)
	assert.Equal(t, []int{3}, sol.OutputShape)
	assert.Equal(t, []float64{1, 1, 1, 1}, sol.Grad)
}

func TestRun_NegativeIDsWithUpstreamGradient(t *testing.T) {
	in := `{"x": [10, 20], "ids": [-1, 0], "num_segments": 1, "dy": [1]}`

	code, stdout, stderr := runCLI(t, in, "run", "-dtype", "float32")
	require.Equal(t, 0, code, stderr)

	sol := decode(t, stdout)
	assert.Equal(t, []float64{20}, sol.Output)
	assert.Equal(t, []float64{0, 1}, sol.Grad)
}

func TestRun_InnerAxisFromFile(t *testing.T) {
	in := `{
		"x": [1, 2, 3, 4, 5, 6],
		"shape": [2, 3],
		"ids": [1, -1, 1],
		"num_segments": 2,
		"axis": 1,
		"dy": [10, 20, 30, 40]
	}`
	path := filepath.Join(t.TempDir(), "problem.json")
	require.NoError(t, os.WriteFile(path, []byte(in), 0o600))

	code, stdout, stderr := runCLI(t, "", "run", path)
	require.Equal(t, 0, code, stderr)

	sol := decode(t, stdout)
	assert.Equal(t, []int{2, 2}, sol.OutputShape)
	assert.Equal(t, []float64{0, 4, 0, 10}, sol.Output)
	assert.Equal(t, []float64{20, 0, 20, 40, 0, 40}, sol.Grad)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		msg   string
	}{
		{"BadJSON", `{"x": [1,`, nil, 1, "invalid problem JSON"},
		{"UnknownField", `{"x": [1], "ids": [0], "segments": 1}`, nil, 1, "invalid problem JSON"},
		{"IDOutOfRange", `{"x": [1, 2], "ids": [0, 5], "num_segments": 2}`, nil, 1, "segment id"},
		{"DYShape", `{"x": [1], "ids": [0], "num_segments": 1, "dy": [1, 2]}`, nil, 1, "dy"},
		{"UnknownBackend", `{"x": [1], "ids": [0], "num_segments": 1}`, []string{"-backend", "tpu"}, 1, "unknown backend"},
		{"UnknownDType", `{"x": [1], "ids": [0], "num_segments": 1}`, []string{"-dtype", "int8"}, 1, "unsupported dtype"},
		{"BadLogLevel", `{}`, []string{"-log-level", "loud"}, 2, "invalid log level"},
		{"BadLogFormat", `{}`, []string{"-log-format", "xml"}, 2, "invalid log format"},
		{"MissingFile", ``, []string{filepath.Join(t.TempDir(), "missing.json")}, 1, "open problem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.stdin, append([]string{"run"}, tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestRun_JSONLogs(t *testing.T) {
	in := `{"x": [1], "ids": [0], "num_segments": 1}`

	code, _, stderr := runCLI(t, in, "run", "-log-level", "debug", "-log-format", "json")
	require.Equal(t, 0, code, stderr)

	line := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "segment sum", entry["msg"])
	assert.Equal(t, "Autodiff(CPU)", entry["backend"])
}
