package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		configPath, verbose = "", false
		answersPath, renderMode, outPath, htmlOnly = "", "clauses", "", false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeAnswers(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fullName":"דנה כהן","monthlyRent":"5000"}`), 0o644))
	return path
}

func TestRenderHTML(t *testing.T) {
	out, err := run(t, "render", "--answers", writeAnswers(t), "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "בעל הדירה: דנה כהן")
}

func TestRenderPDFToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "contract.pdf")
	_, err := run(t, "render", "--answers", writeAnswers(t), "--mode", "template", "--out", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderErrors(t *testing.T) {
	_, err := run(t, "render", "--answers", writeAnswers(t), "--mode", "draft")
	assert.Error(t, err)

	_, err = run(t, "render", "--answers", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

}

func TestRenderFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(master, nil, 0o644))
	conf := filepath.Join(dir, "rentd.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("templates:\n  master: "+master+"\n"), 0o644))

	dst := filepath.Join(dir, "contract.pdf")
	_, err := run(t, "--config", conf, "render", "--answers", writeAnswers(t), "--mode", "template", "--out", dst)
	require.Error(t, err)
	assert.NoFileExists(t, dst)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	_, err := run(t, "--config", path, "render", "--answers", writeAnswers(t))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "level"), err.Error())
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1), "verbose should enable debug")

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}
