package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testIDLSource = `{
  "name": "demo",
  "structs": [
    {
      "name": "Point",
      "extensibility": "final",
      "members": [
        {"name": "x", "memberId": 0, "type": {"kind": "primitive", "primitive": "uint32"}},
        {"name": "y", "memberId": 1, "type": {"kind": "primitive", "primitive": "uint32"}}
      ]
    }
  ]
}`

// resetGenerateFlags clears the override flags between tests so one test's
// --union-template doesn't leak into the next, since the flag vars are
// package-level and rootCmd is reused across the whole test binary.
func resetGenerateFlags() {
	genPackage = "generated"
	genOutDir = "."
	unionTmpl = ""
	unionGetterTmpl = ""
	unionInc = ""
}

func writeTestIDL(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(path, []byte(testIDLSource), 0o644))
	return path
}

func TestGenerateCommandWritesFormattedSourceFile(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	idlPath := writeTestIDL(t, dir)
	outDir := filepath.Join(dir, "out")

	rootCmd.SetArgs([]string{"generate", idlPath, "--package", "demo", "--out", outDir})
	require.NoError(t, rootCmd.Execute())

	contents, err := os.ReadFile(filepath.Join(outDir, "demo_point_gen.go"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "type demo_Point struct")
	require.Contains(t, string(contents), "package demo")
}

func TestGenerateCommandHonorsUnionTemplateFlag(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	idlSrc := `{
		"name": "demo",
		"unions": [{
			"name": "Choice",
			"extensibility": "mutable",
			"discriminatorType": {"kind": "primitive", "primitive": "int32"},
			"branches": [
				{"labels": [1], "member": {"name": "red", "memberId": 0, "type": {"kind":"primitive","primitive":"int32"}}},
				{"default": true, "member": {"name": "green", "memberId": 1, "type": {"kind":"primitive","primitive":"int32"}}}
			]
		}]
	}`
	idlPath := filepath.Join(dir, "demo.json")
	require.NoError(t, os.WriteFile(idlPath, []byte(idlSrc), 0o644))
	outDir := filepath.Join(dir, "out")

	rootCmd.SetArgs([]string{
		"generate", idlPath,
		"--package", "demo",
		"--out", outDir,
		"--union-template", "customUnionBacking",
	})
	require.NoError(t, rootCmd.Execute())

	contents, err := os.ReadFile(filepath.Join(outDir, "demo_choice_gen.go"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "customUnionBacking")
}

func TestGenerateCommandJSONSummary(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	idlPath := writeTestIDL(t, dir)
	outDir := filepath.Join(dir, "out")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	oldStdout := os.Stdout
	os.Stdout = w

	rootCmd.SetArgs([]string{"generate", idlPath, "--package", "demo", "--out", outDir, "--json"})
	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout
	require.NoError(t, runErr)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	require.Equal(t, float64(1), summary["files"])
	require.Equal(t, "demo", summary["package"])
}

func TestGenerateCommandRejectsMissingIDLFile(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"generate", filepath.Join(dir, "missing.json"), "--out", dir})
	require.Error(t, rootCmd.Execute())
}
