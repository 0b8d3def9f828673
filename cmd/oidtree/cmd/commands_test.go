package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/oidtree/internal/record"
	"github.com/dbsmedya/oidtree/internal/tree"
)

const sampleRecords = `{
  "root": {"oid": "1.3.6.1", "name": "Root"},
  "child": {"oid": "1.3.6.1.2", "name": "Child", "class": "objecttype"},
  "orphan1": {"name": "NoPath"}
}`

// useInput points the --input flag at a temp file holding content and
// captures command output. Globals are restored when the test ends.
func useInput(t *testing.T, name, content string) (string, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	originalInputPath := inputPath
	originalNoColor := noColor
	originalLogLevel := logLevel
	t.Cleanup(func() {
		inputPath = originalInputPath
		noColor = originalNoColor
		logLevel = originalLogLevel
		resetOutputWriter()
	})

	inputPath = path
	noColor = true
	logLevel = "error"

	var buf bytes.Buffer
	setOutputWriter(&buf)
	return path, &buf
}

func writeSampleArtifact(t *testing.T) string {
	t.Helper()

	records, err := record.Unmarshal([]byte(sampleRecords))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample_tree.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tree.WriteArtifact(f, tree.Build(records, "root"), 2, false))
	require.NoError(t, f.Close())
	return path
}

func TestRunBuild_SingleRoot(t *testing.T) {
	input, out := useInput(t, "SCENARIO-MIB.json", sampleRecords)
	t.Cleanup(func() { buildRoots, buildOrphans = nil, false })
	buildRoots = []string{"root"}
	buildOrphans = true

	require.NoError(t, runBuild(buildCmd, nil))

	artifactPath := strings.TrimSuffix(input, ".json") + "_tree.json"
	assert.Equal(t, artifactPath+"\n", out.String())

	data, err := os.ReadFile(artifactPath)
	require.NoError(t, err)

	var art map[string]any
	require.NoError(t, json.Unmarshal(data, &art))
	assert.Equal(t, map[string]any{
		"oid":  "1.3.6.1",
		"name": "Root",
		"children": []any{
			map[string]any{"oid": "1.3.6.1.2", "name": "Child", "class": "objecttype", "children": []any{}},
		},
	}, art["tree"])
	assert.Equal(t, []any{map[string]any{"name": "NoPath"}}, art["orphans"])
}

func TestRunBuild_DiscoversRoots(t *testing.T) {
	input, out := useInput(t, "TWO.json", `{
		"a": {"oid": "1.3.6.1", "name": "A"},
		"b": {"oid": "1.3.6.10", "name": "B"},
		"a1": {"oid": "1.3.6.1.1", "name": "A1"}
	}`)

	require.NoError(t, runBuild(buildCmd, nil))

	stem := strings.TrimSuffix(input, ".json")
	assert.Equal(t, stem+"_tree.a.json\n"+stem+"_tree.b.json\n", out.String())

	f, err := os.Open(stem + "_tree.a.json")
	require.NoError(t, err)
	defer f.Close()
	root, err := tree.ReadArtifact(f, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A1"}, root.Keys())
}

func TestRunBuild_RejectsRootKeyWithPath(t *testing.T) {
	input, _ := useInput(t, "KEYS.json", `{
		"../escape": {"oid": "1.3", "name": "escape"},
		"b": {"oid": "2.5", "name": "B"}
	}`)

	err := runBuild(buildCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used in an output file name")

	_, statErr := os.Stat(filepath.Join(filepath.Dir(filepath.Dir(input)), "escape_tree.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunBuild_MissingInput(t *testing.T) {
	useInput(t, "unused.json", `{}`)
	inputPath = filepath.Join(t.TempDir(), "missing.json")

	err := runBuild(buildCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input not found")
}

func TestRunBuild_NoOIDs(t *testing.T) {
	useInput(t, "EMPTY.json", `{"x": {"name": "x"}}`)

	err := runBuild(buildCmd, nil)
	assert.Error(t, err)
}

func TestRunSearch(t *testing.T) {
	_, out := useInput(t, "unused.json", `{}`)
	t.Cleanup(func() { searchTree = "" })
	searchTree = writeSampleArtifact(t)

	require.NoError(t, runSearch(searchCmd, []string{"CHILD"}))

	var matches []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &matches))
	assert.Equal(t, []map[string]any{
		{"oid": "1.3.6.1.2", "name": "Child"},
	}, matches)
}

func TestRunSearch_ExcludeOverride(t *testing.T) {
	_, out := useInput(t, "unused.json", `{}`)
	flag := searchCmd.Flags().Lookup("exclude")
	t.Cleanup(func() {
		searchTree = ""
		searchExclude = nil
		flag.Changed = false
	})
	searchTree = writeSampleArtifact(t)
	require.NoError(t, searchCmd.Flags().Set("exclude", "children"))

	require.NoError(t, runSearch(searchCmd, []string{""}))

	var matches []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "Root", matches[0]["name"])
	assert.Equal(t, "objecttype", matches[1]["class"])
	assert.NotContains(t, matches[0], "children")
}

func TestRunSearch_NullTreeArtifact(t *testing.T) {
	_, out := useInput(t, "unused.json", `{}`)
	t.Cleanup(func() { searchTree = "" })

	records, err := record.Unmarshal([]byte(sampleRecords))
	require.NoError(t, err)
	searchTree = filepath.Join(t.TempDir(), "missing_tree.json")
	f, err := os.Create(searchTree)
	require.NoError(t, err)
	require.NoError(t, tree.WriteArtifact(f, tree.Build(records, "missing-root"), 2, false))
	require.NoError(t, f.Close())

	require.NoError(t, runSearch(searchCmd, []string{"x"}))
	assert.Equal(t, "[]\n", out.String())
}

func TestRunShow_NullTreeArtifact(t *testing.T) {
	_, out := useInput(t, "unused.json", `{}`)
	t.Cleanup(func() { showTree = "" })
	showTree = filepath.Join(t.TempDir(), "null_tree.json")
	require.NoError(t, os.WriteFile(showTree, []byte(`{"tree": null}`), 0o644))

	require.NoError(t, runShow(showCmd, nil))
	assert.Empty(t, out.String())
}

func TestRunSearch_NoTree(t *testing.T) {
	useInput(t, "unused.json", `{}`)
	inputPath = ""

	err := runSearch(searchCmd, []string{"x"})
	assert.Error(t, err)
}

func TestRunShow(t *testing.T) {
	_, out := useInput(t, "unused.json", `{}`)
	t.Cleanup(func() { showTree, showASCII = "", false })
	showTree = writeSampleArtifact(t)
	showASCII = true

	require.NoError(t, runShow(showCmd, nil))

	expected := "Root" + strings.Repeat(" ", 7) + "1.3.6.1\n" +
		"`-- Child  1.3.6.1.2\n"
	assert.Equal(t, expected, out.String())
}

func TestRunSections(t *testing.T) {
	path, out := useInput(t, "IF-MIB.json", `{
		"imports": {"SNMPv2-SMI": ["MODULE-IDENTITY"]},
		"ifMIB": {"name": "ifMIB", "revisions": ["x"], "lastupdated": "200006140000Z"},
		"meta": {"module": "IF-MIB"}
	}`)

	require.NoError(t, runSections(sectionsCmd, []string{path}))

	output := out.String()
	assert.Contains(t, output, "Required Imports")
	assert.Contains(t, output, "MODULE-IDENTITY")
	assert.Contains(t, output, "2000-06-14 00:00:00 UTC")
	assert.NotContains(t, output, "IF-MIB")
	assert.NotContains(t, output, "Revisions")
}

func TestRunRoots(t *testing.T) {
	_, out := useInput(t, "SCENARIO-MIB.json", sampleRecords)

	require.NoError(t, runRoots(rootsCmd, nil))

	assert.Equal(t, "root\t1.3.6.1\norphans: 1\n", out.String())
}
