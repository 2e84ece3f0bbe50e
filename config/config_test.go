package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pngmin"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/param"
)

const sampleYAML = `
matrices:
  - filter: [0, 5]
    interlace: [0]
    windowBits: [15]
    level: [9]
    memLevel: [8, 9]
    strategy: [0, 1, 2, 3]
  - filter: [1]
    interlace: [0]
    windowBits: [12]
    level: [6]
    memLevel: [9]
    strategy: [2]
maxRecordPayloadSize: 8192
workers: 0
candidateCompression: lz4
verifyChecksums: true
`

func TestParse_YAML(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, f.Matrices, 2)
	require.Equal(t, param.DefaultMatrices()[0], f.Matrices[0])
	require.Equal(t, []int{12}, f.Matrices[1].WindowBits)
	require.Equal(t, 8192, f.MaxRecordPayloadSize)
	require.NotNil(t, f.Workers)
	require.Zero(t, *f.Workers)
	require.Equal(t, "lz4", f.CandidateCompression)
	require.True(t, f.VerifyChecksums)

	opt, err := pngmin.New(f.Options()...)
	require.NoError(t, err)
	require.Len(t, opt.Combinations(), 17)
}

func TestParse_JSON(t *testing.T) {
	doc := `{"matrices": [{"filter": [5], "interlace": [0], "windowBits": [15], "level": [9], "memLevel": [9], "strategy": [0, 1]}], "candidateCompression": "zstd"}`

	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Nil(t, f.Workers)

	opt, err := pngmin.New(f.Options()...)
	require.NoError(t, err)
	require.Len(t, opt.Combinations(), 2)
}

func TestParse_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse([]byte("matrixes: []\n"))
		require.Error(t, err)
	})

	t.Run("unknown codec", func(t *testing.T) {
		_, err := Parse([]byte("candidateCompression: brotli\n"))
		require.ErrorIs(t, err, errs.ErrUnknownCodec)
	})

	t.Run("missing field", func(t *testing.T) {
		f, err := Parse([]byte("matrices:\n  - filter: [0]\n    level: [9]\n"))
		require.NoError(t, err)

		_, err = pngmin.New(f.Options()...)
		require.ErrorIs(t, err, errs.ErrEmptyField)
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := Parse(nil)
		require.NoError(t, err)
		require.Empty(t, f.Options())
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pngmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Matrices, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
