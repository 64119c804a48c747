package volume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, named ...string) (*Resolver, string, string) {
	t.Helper()
	workDir := t.TempDir()
	home := t.TempDir()
	return New(named, workDir, home), workDir, home
}

func TestResolveNamedVolume(t *testing.T) {
	r, _, home := newTestResolver(t, "db-data")

	mount, warning, err := r.Resolve("db-data:/var/lib/postgresql/data")
	require.NoError(t, err)
	assert.Empty(t, warning)

	expected := filepath.Join(home, ".container-compose/volumes/db-data") + ":/var/lib/postgresql/data"
	assert.Equal(t, expected, mount)

	// Resolution must have created the backing directory.
	info, err := os.Stat(r.NamedVolumePath("db-data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveNamedVolumeWithOptions(t *testing.T) {
	r, _, home := newTestResolver(t, "db-data")

	mount, _, err := r.Resolve("db-data:/data:ro")
	require.NoError(t, err)

	expected := filepath.Join(home, ".container-compose/volumes/db-data") + ":/data:ro"
	assert.Equal(t, expected, mount)
}

func TestResolveAnonymousVolume(t *testing.T) {
	r, _, _ := newTestResolver(t)

	_, _, err := r.Resolve("/var/lib/data")
	var anonErr *AnonymousVolumeError
	require.ErrorAs(t, err, &anonErr)
	assert.Equal(t, "/var/lib/data", anonErr.Spec)
}

func TestResolveRelativeBindMount(t *testing.T) {
	r, workDir, _ := newTestResolver(t)
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "src"), 0o755))

	mount, warning, err := r.Resolve("./src:/app/src")
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, filepath.Join(workDir, "src")+":/app/src", mount)
}

func TestResolveBareNameBindMount(t *testing.T) {
	// A bare name that is not a declared volume resolves relative to the
	// working directory, not to a managed volume.
	r, workDir, _ := newTestResolver(t)
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "config"), 0o755))

	mount, _, err := r.Resolve("config:/etc/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "config")+":/etc/app", mount)
}

func TestResolveAbsoluteBindMount(t *testing.T) {
	r, _, _ := newTestResolver(t)
	dir := t.TempDir()

	mount, _, err := r.Resolve(dir + ":/data")
	require.NoError(t, err)
	assert.Equal(t, dir+":/data", mount)
}

func TestResolveBindMountMissingSource(t *testing.T) {
	r, workDir, _ := newTestResolver(t)

	_, _, err := r.Resolve("./does-not-exist:/app")
	var notFound *SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "./does-not-exist", notFound.Spec)
	assert.Equal(t, filepath.Join(workDir, "does-not-exist"), notFound.Resolved)
}

func TestResolveBindMountOptionsSuffixVerbatim(t *testing.T) {
	r, workDir, _ := newTestResolver(t)
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "src"), 0o755))

	mount, _, err := r.Resolve("./src:/app:ro,cached")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "src")+":/app:ro,cached", mount)
}

func TestResolvePathWithSpacesWarns(t *testing.T) {
	r, workDir, _ := newTestResolver(t)
	spaced := filepath.Join(workDir, "my data")
	require.NoError(t, os.MkdirAll(spaced, 0o755))

	mount, warning, err := r.Resolve("./my data:/data")
	require.NoError(t, err, "a spaced path is a warning, not an error")
	assert.Equal(t, spaced+":/data", mount)
	assert.Contains(t, warning, "spaces")
}

func TestResolveNamedVolumeSkipsExistenceCheck(t *testing.T) {
	// The named-volume directory is created on demand; resolution must not
	// fail just because nothing wrote to it yet.
	r, _, _ := newTestResolver(t, "fresh")

	_, _, err := r.Resolve("fresh:/data")
	assert.NoError(t, err)
}

func TestEnsureNamedVolumes(t *testing.T) {
	r, _, _ := newTestResolver(t, "a", "b")

	require.NoError(t, r.EnsureNamedVolumes())
	for _, name := range []string{"a", "b"} {
		info, err := os.Stat(r.NamedVolumePath(name))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	assert.NoError(t, r.EnsureNamedVolumes())
}

func TestRemoveNamedVolume(t *testing.T) {
	r, _, _ := newTestResolver(t, "data")
	require.NoError(t, r.EnsureNamedVolumes())

	require.NoError(t, r.RemoveNamedVolume("data"))
	_, err := os.Stat(r.NamedVolumePath("data"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveNamedVolumeUnknown(t *testing.T) {
	r, _, _ := newTestResolver(t, "data")

	err := r.RemoveNamedVolume("other")
	assert.Error(t, err)
}
