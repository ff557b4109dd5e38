package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ec2bgen/internal/ec2b"
	"github.com/udisondev/ec2bgen/internal/testutil"
)

func TestBatch_Single(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	dir := t.TempDir()
	d := testutil.Deriver(t, testutil.Tables(t))

	records, err := Batch(ctx, 1, 4, func(int) *ec2b.Generator {
		return ec2b.NewGenerator(d, nil)
	}, NewWriter(dir))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, filepath.Join(dir, DefaultSeedName), records[0].SeedPath)
}

func TestBatch_Many(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	dir := t.TempDir()
	d := testutil.Deriver(t, testutil.Tables(t))
	seed := []byte("batch")

	const n = 12
	records, err := Batch(ctx, n, 3, func(i int) *ec2b.Generator {
		return ec2b.NewGenerator(d, ec2b.NewSeededSource(seed, i))
	}, NewWriter(dir))
	require.NoError(t, err)
	require.Len(t, records, n)

	seen := make(map[string]bool)
	for i, rec := range records {
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("%04d", i), DefaultKeyName), rec.KeyPath)
		assert.False(t, seen[rec.KeyFingerprint], "duplicate xorpad at %d", i)
		seen[rec.KeyFingerprint] = true

		// Every written pair reproduces from its seed file.
		raw, err := os.ReadFile(rec.SeedPath)
		require.NoError(t, err)
		sf, err := ec2b.ParseSeedFile(raw)
		require.NoError(t, err)
		xorpad, err := ec2b.NewGenerator(d, nil).Reproduce(sf)
		require.NoError(t, err)
		assert.Equal(t, rec.KeyFingerprint, Fingerprint(xorpad))
	}

	// Same seed, same batch.
	again, err := Batch(ctx, n, 5, func(i int) *ec2b.Generator {
		return ec2b.NewGenerator(d, ec2b.NewSeededSource(seed, i))
	}, NewWriter(t.TempDir()))
	require.NoError(t, err)
	for i := range records {
		assert.Equal(t, records[i].KeyFingerprint, again[i].KeyFingerprint)
	}
}

func TestBatch_FailureCancels(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	d := testutil.Deriver(t, testutil.Tables(t))

	var started atomic.Int32
	_, err := Batch(ctx, 50, 1, func(i int) *ec2b.Generator {
		started.Add(1)
		if i == 2 {
			return ec2b.NewGenerator(d, &testutil.FailingReader{})
		}
		return ec2b.NewGenerator(d, nil)
	}, NewWriter(t.TempDir()))

	require.ErrorIs(t, err, testutil.ErrSimulated)
	assert.Less(t, started.Load(), int32(50))
}

func TestBatch_CanceledContext(t *testing.T) {
	ctx, cancel := testutil.ContextWithCancel(t)
	cancel()

	d := testutil.Deriver(t, testutil.Tables(t))
	_, err := Batch(ctx, 3, 2, func(int) *ec2b.Generator {
		return ec2b.NewGenerator(d, nil)
	}, NewWriter(t.TempDir()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatch_InvalidSize(t *testing.T) {
	_, err := Batch(context.Background(), 0, 1, nil, NewWriter(t.TempDir()))
	assert.Error(t, err)
}
