package print

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/tabular"
	"github.com/nsf/jsondiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertJSON(t *testing.T, want string, got []byte) {
	t.Helper()
	opts := jsondiff.DefaultConsoleOptions()
	diff, explanation := jsondiff.Compare([]byte(want), got, &opts)
	assert.Equal(t, jsondiff.FullMatch, diff, explanation)
}

func fruits(t *testing.T) *tabular.Table {
	t.Helper()
	tbl := tabular.New()
	require.NoError(t, tbl.Header("name", "count"))
	require.NoError(t, tbl.Row("apple", 3))
	require.NoError(t, tbl.Row("pear", 12))
	return tbl
}

func TestTableJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, fruits(t), config.OutputFormatJSON, nil))
	assertJSON(t, `[{"name": "apple", "count": "3"}, {"name": "pear", "count": "12"}]`, buf.Bytes())
}

func TestTableYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, fruits(t), config.OutputFormatYAML, nil))
	assert.Equal(t, "- count: \"3\"\n  name: apple\n- count: \"12\"\n  name: pear\n", buf.String())
}

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, fruits(t), config.OutputFormatDefault, []tabular.Align{tabular.Left, tabular.Right}))
	assert.Equal(t, "name   count\napple      3\npear      12\n", buf.String())
}

func TestError(t *testing.T) {
	boom := errors.New("boom")

	var buf bytes.Buffer
	require.NoError(t, Error(&buf, boom, config.OutputFormatJSON))
	assertJSON(t, `{"error": "boom"}`, buf.Bytes())

	assert.Equal(t, boom, Error(&buf, boom, config.OutputFormatDefault))
	assert.EqualError(t, Error(&buf, boom, "xml"), `unsupported output format: "xml"`)
}
