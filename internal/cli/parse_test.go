package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TextTree(t *testing.T) {
	out, err := executeCommand(t, "parse", "ck_tile::tuple<int, ck_tile::sequence<0, 1>>")
	require.NoError(t, err)

	want := `ck_tile::tuple<
  int
  ck_tile::sequence<
    0
    1
  >
>
`
	assert.Equal(t, want, out)
}

func TestParse_Leaf(t *testing.T) {
	out, err := executeCommand(t, "parse", "float")
	require.NoError(t, err)
	assert.Equal(t, "float\n", out)
}

func TestParse_TruncatedFlagged(t *testing.T) {
	out, err := executeCommand(t, "parse", "ck_tile::tuple<int, ck_tile::sequence<0")
	require.NoError(t, err)
	assert.Contains(t, out, "(signature truncated, tree is best-effort)")
	assert.Contains(t, out, "ck_tile::sequence<")
}

func TestParse_JSON(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "parse", "ck_tile::constant<64>")
	require.NoError(t, err)

	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"complete": true`)
	assert.Contains(t, out, `"name": "ck_tile::constant"`)
	assert.Contains(t, out, `"name": "64"`)
}

func TestParse_UnparseableFails(t *testing.T) {
	_, err := executeCommand(t, "parse", "ck_tile::tuple<int>>")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
