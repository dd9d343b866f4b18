package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDetectsRewrites(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)
	dir := t.TempDir()
	wheel := filepath.Join(dir, "my_pkg-1.2.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(wheel, []byte("old"), 0o644))

	before, err := snapshot(dir)
	require.NoError(t, err)

	// Untouched since the snapshot: nothing to report.
	got, err := scan(ctx, dir, before)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Overwritten under the same name, as a rebuild without a version bump
	// does.  The mtime bump is explicit so the test does not depend on
	// filesystem timestamp granularity.
	require.NoError(t, os.WriteFile(wheel, []byte("new"), 0o644))
	stamp := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(wheel, stamp, stamp))

	got, err = scan(ctx, dir, before)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, wheel, got[0].Filename)

	// A brand-new artifact shows up alongside it.
	sdist := filepath.Join(dir, "my_pkg-1.2.0.tar.gz")
	require.NoError(t, os.WriteFile(sdist, []byte("sdist"), 0o644))
	got, err = scan(ctx, dir, before)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
