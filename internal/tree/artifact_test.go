package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/oidtree/internal/record"
)

func TestWriteArtifact(t *testing.T) {
	res := Build(sampleRecords(), "root")

	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, res, 2, false))

	assert.JSONEq(t,
		`{"tree":{"oid":"1.3.6.1","name":"Root","children":[{"oid":"1.3.6.1.2","name":"Child","children":[]}]}}`,
		buf.String())
	assert.Contains(t, buf.String(), "\n  \"tree\"")
}

func TestWriteArtifact_OrphansAndAbsentTree(t *testing.T) {
	res := Build(sampleRecords(), "missing-root")

	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, res, 0, true))
	assert.JSONEq(t, `{"tree":null,"orphans":[{"name":"NoPath"}]}`, buf.String())
}

func TestReadArtifact_RoundTrip(t *testing.T) {
	res := Build(sampleRecords(), "root")
	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, res, 2, false))

	root, err := ReadArtifact(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, "Root", root.Key)
	assert.Equal(t, "1.3.6.1", root.OID())
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Child", root.Children[0].Name())

	original, _ := json.Marshal(res.Root)
	reread, _ := json.Marshal(root)
	assert.JSONEq(t, string(original), string(reread))
}

func TestReadArtifact_CustomPath(t *testing.T) {
	doc := `{"result": {"tree": {"name": "iso", "oid": "1", "children": [{"name": "org", "oid": "1.3"}]}}}`

	root, err := ReadArtifact(strings.NewReader(doc), "$.result.tree")
	require.NoError(t, err)
	assert.Equal(t, []string{"iso", "org"}, root.Keys())
	assert.NotNil(t, root.Children[0].Children)
}

func TestReadArtifact_Errors(t *testing.T) {
	_, err := ReadArtifact(strings.NewReader(`{"other": {}}`), "")
	assert.True(t, errors.Is(err, ErrNoTree), "got %v", err)

	_, err = ReadArtifact(strings.NewReader(`{not json`), "")
	assert.True(t, errors.Is(err, record.ErrMalformedInput), "got %v", err)

	_, err = ReadArtifact(strings.NewReader(`{"tree": "flat"}`), "")
	assert.True(t, errors.Is(err, record.ErrMalformedInput), "got %v", err)

	_, err = ReadArtifact(strings.NewReader(`{"tree": {"name": "x", "children": {}}}`), "")
	assert.True(t, errors.Is(err, record.ErrMalformedInput), "got %v", err)

	_, err = ReadArtifact(strings.NewReader(`{}`), "$[")
	assert.Error(t, err)
}

func TestReadArtifact_NullTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, Build(sampleRecords(), "missing-root"), 2, true))

	root, err := ReadArtifact(&buf, "")
	require.NoError(t, err)
	assert.Nil(t, root)

	root, err = ReadArtifact(strings.NewReader(`{"tree": null}`), "")
	require.NoError(t, err)
	assert.Nil(t, root)
}
