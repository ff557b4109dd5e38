package ec2b_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ec2bgen/internal/ec2b"
	"github.com/udisondev/ec2bgen/internal/testutil"
)

func TestNewTables_Sizes(t *testing.T) {
	full := make([]byte, ec2b.AesXorpadSize)
	key := make([]byte, ec2b.KeyXorpadSize)

	tests := []struct {
		name           string
		aes0, aes1, kx []byte
	}{
		{"short aes0", full[:100], full, key},
		{"short aes1", full, full[:ec2b.AesXorpadSize-1], key},
		{"long aes1", full, append(full, 0), key},
		{"short key xorpad", full, full, key[:15]},
		{"nil", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ec2b.NewTables(tt.aes0, tt.aes1, tt.kx)
			assert.ErrorIs(t, err, ec2b.ErrInvalidTables)
		})
	}
}

func TestNewTables_Copies(t *testing.T) {
	aes0 := testutil.MTBytes(1, ec2b.AesXorpadSize)
	tables, err := ec2b.NewTables(aes0, make([]byte, ec2b.AesXorpadSize), make([]byte, ec2b.KeyXorpadSize))
	require.NoError(t, err)

	aes0[0] ^= 0xff
	assert.NotEqual(t, aes0[0], tables.AesXorpad[0][0])
}

func TestTables_FileRoundTrip(t *testing.T) {
	tables := testutil.Tables(t)

	b, err := tables.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, ec2b.TablesFileSize)

	path := filepath.Join(t.TempDir(), "ec2b_tables.bin")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	loaded, err := ec2b.LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, tables, loaded)
}

func TestParseTables_WrongSize(t *testing.T) {
	_, err := ec2b.ParseTables(make([]byte, ec2b.TablesFileSize-1))
	assert.ErrorIs(t, err, ec2b.ErrInvalidTables)
}

func TestLoadTables_Missing(t *testing.T) {
	_, err := ec2b.LoadTables(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
