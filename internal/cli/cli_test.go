package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI and returns stdout, stderr and the exit code.
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)

	return out.String(), errOut.String(), code
}

// fixtures builds the test indexes into a temp dir: months.fst (set),
// days.fst and extra.fst (maps).
func fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	_, stderr, code := run(t, "", "build", "set", filepath.Join("testdata", "months.txt"), filepath.Join(dir, "months.fst"))
	require.Equal(t, ExitSuccess, code, stderr)
	_, stderr, code = run(t, "", "build", "map", "--sorted", filepath.Join("testdata", "days.tsv"), filepath.Join(dir, "days.fst"))
	require.Equal(t, ExitSuccess, code, stderr)
	_, stderr, code = run(t, "", "build", "map", filepath.Join("testdata", "extra.tsv"), filepath.Join(dir, "extra.fst"))
	require.Equal(t, ExitSuccess, code, stderr)

	return dir
}

func TestGolden(t *testing.T) {
	dir := fixtures(t)
	months := filepath.Join(dir, "months.fst")
	days := filepath.Join(dir, "days.fst")
	extra := filepath.Join(dir, "extra.fst")

	tests := []struct {
		name string
		args []string
	}{
		{"range_all", []string{"range", days}},
		{"range_bounded", []string{"range", days, "--ge", "j", "--lt", "m"}},
		{"fuzzy_distance", []string{"fuzzy", days, "jume", "-d", "1"}},
		{"fuzzy_prefix", []string{"fuzzy", months, "ma", "-d", "0", "--prefix"}},
		{"grep_set", []string{"grep", months, ".*ber"}},
		{"grep_json", []string{"--format", "json", "grep", days, "[a-z]+y"}},
		{"intersect_sum", []string{"intersect", days, extra}},
		{"difference", []string{"difference", days, extra}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, code := run(t, "", tc.args...)
			require.Equal(t, ExitSuccess, code, stderr)
			g.Assert(t, tc.name, []byte(stdout))
		})
	}
}

func TestBuild_Result(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "s.fst")

	stdout, _, code := run(t, "b\na\nc\n", "--format", "json", "build", "set", "-", out)
	require.Equal(t, ExitSuccess, code)

	var resp struct {
		Status string      `json:"status"`
		Data   BuildResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "set", resp.Data.Kind)
	assert.Equal(t, 3, resp.Data.Keys)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, int64(resp.Data.Bytes), info.Size())

	stdout, _, code = run(t, "", "range", out)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "a\nb\nc\n", stdout)
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.fst")

	_, stderr, code := run(t, "b\na\n", "build", "set", "--sorted", "-", out)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "line 2: input not sorted")
	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist, "no partial output")

	_, stderr, code = run(t, "a\t1\nb\n", "build", "map", "-", out)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "-:2: want key<TAB>value")

	_, stderr, code = run(t, "a\tx\n", "build", "map", "-", out)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "bad value")

	_, stderr, code = run(t, "a\t1\na\t2\n", "build", "map", "-", out)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `duplicate key "a"`)

	_, _, code = run(t, "", "build", "set", filepath.Join(dir, "missing.txt"), out)
	assert.Equal(t, ExitCommandError, code)

	_, _, code = run(t, "", "build", "set", "-")
	assert.Equal(t, ExitCommandError, code)
}

func TestGet(t *testing.T) {
	dir := fixtures(t)

	stdout, _, code := run(t, "", "get", filepath.Join(dir, "days.fst"), "february")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "february\t28\n", stdout)

	stdout, _, code = run(t, "", "get", filepath.Join(dir, "months.fst"), "may")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "may\n", stdout)

	_, stderr, code := run(t, "", "get", filepath.Join(dir, "days.fst"), "smarch")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, `key "smarch" not found`)

	stdout, _, code = run(t, "", "--format", "json", "get", filepath.Join(dir, "days.fst"), "smarch")
	assert.Equal(t, ExitFailure, code)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ExitFailure, resp.Error.Code)
}

func TestRange_Limit(t *testing.T) {
	dir := fixtures(t)
	stdout, _, code := run(t, "", "range", filepath.Join(dir, "months.fst"), "--gt", "j", "--limit", "2")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "january\njuly\n", stdout)
}

func TestSetOps(t *testing.T) {
	dir := fixtures(t)
	days := filepath.Join(dir, "days.fst")
	extra := filepath.Join(dir, "extra.fst")
	months := filepath.Join(dir, "months.fst")

	stdout, _, code := run(t, "", "union", days, extra, "--fold", "first", "--gt", "s")
	assert.Equal(t, ExitCommandError, code, "union has no bounds")
	assert.Empty(t, stdout)

	stdout, _, code = run(t, "", "symdiff", days, extra, "--fold", "max")
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stdout)

	stdout, _, code = run(t, "", "symdiff", days, extra)
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout, "june")
	assert.Contains(t, stdout, "smarch\t5\n")

	// Merging sets yields a set.
	out := filepath.Join(dir, "u.fst")
	_, stderr, code := run(t, "", "union", months, months, "-o", out)
	require.Equal(t, ExitSuccess, code, stderr)
	stdout, _, code = run(t, "", "stats", out)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "kind         set")
	assert.Contains(t, stdout, "keys         12")

	// Merging maps folds values into a map.
	_, stderr, code = run(t, "", "union", days, extra, "--fold", "sum", "-o", out)
	require.Equal(t, ExitSuccess, code, stderr)
	stdout, _, _ = run(t, "", "get", out, "june")
	assert.Equal(t, "june\t31\n", stdout)

	_, _, code = run(t, "", "union", days)
	assert.Equal(t, ExitCommandError, code)
}

func TestVerify(t *testing.T) {
	dir := fixtures(t)
	path := filepath.Join(dir, "days.fst")

	stdout, _, code := run(t, "", "verify", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "ok, 12 keys")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0x55
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, stderr, code := run(t, "", "verify", path)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "verification failed")

	_, _, code = run(t, "", "range", path)
	assert.Equal(t, ExitCommandError, code)
}

func TestConfigAndNormalize(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lvfst.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("normalize: nfc\nlevenshtein:\n  distance: 0\n"), 0o644))
	out := filepath.Join(dir, "n.fst")

	// "cafe" + U+0301 composes to "caf\u00e9" under NFC.
	_, stderr, code := run(t, "cafe\u0301\n", "--config", cfgPath, "build", "set", "-", out)
	require.Equal(t, ExitSuccess, code, stderr)

	stdout, _, code := run(t, "", "range", out)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "caf\u00e9\n", stdout)

	stdout, _, code = run(t, "", "--config", cfgPath, "fuzzy", out, "cafe\u0301")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "caf\u00e9\t0\n", stdout)

	_, _, code = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "range", out)
	assert.Equal(t, ExitCommandError, code)
	_, _, code = run(t, "", "--normalize", "nfx", "range", out)
	assert.Equal(t, ExitCommandError, code)
	_, _, code = run(t, "", "--format", "xml", "range", out)
	assert.Equal(t, ExitCommandError, code)
}

func TestGrep_PatternNotNormalized(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "p.fst")
	_, stderr, code := run(t, "b\n\uff08b\uff09\n", "build", "set", "-", out)
	require.Equal(t, ExitSuccess, code, stderr)

	// Under NFKC the fullwidth parentheses would become a capture group
	// matching "b"; the pattern must stay a literal.
	stdout, stderr, code := run(t, "", "--normalize", "nfkc", "grep", out, "\uff08b\uff09")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "\uff08b\uff09\n", stdout)
}

func TestQueryErrors(t *testing.T) {
	dir := fixtures(t)
	days := filepath.Join(dir, "days.fst")

	_, stderr, code := run(t, "", "grep", days, "^j")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "unsupported pattern")

	_, stderr, code = run(t, "", "fuzzy", days, "abcdefghijklmnopqrstuvwxyz", "-d", "250")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "exceeds state limit")

	_, _, code = run(t, "", "range", filepath.Join(dir, "nope.fst"))
	assert.Equal(t, ExitCommandError, code)
}

func TestVerbose_LogsToStderr(t *testing.T) {
	dir := fixtures(t)
	stdout, stderr, code := run(t, "", "-v", "fuzzy", filepath.Join(dir, "days.fst"), "jume")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "june\t30\t1\n", stdout)
	assert.Contains(t, stderr, "automaton built")
}

func TestTelemetry_Stdout(t *testing.T) {
	dir := fixtures(t)
	_, stderr, code := run(t, "", "--telemetry", "stdout", "range", filepath.Join(dir, "months.fst"))
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "lvfst.index.range")
}
