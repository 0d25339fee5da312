package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/dupes/internal/adapters/lockfile"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const sampleLockfile = `version = 3

[[package]]
name = "app"
version = "1.0.0"
dependencies = [
 "foo",
 "serde 1.0.100",
]

[[package]]
name = "foo"
version = "0.1.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "d5f4c0f0c163f1a5a1a2d09b1b2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b"
dependencies = [
 "serde 1.0.210 (registry+https://github.com/rust-lang/crates.io-index)",
]

[[package]]
name = "serde"
version = "1.0.100"

[[package]]
name = "serde"
version = "1.0.210"
`

func newReader(t *testing.T) *lockfile.Reader {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return lockfile.NewReader(logger)
}

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.lock")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_ParsesPackagesAndDependencies(t *testing.T) {
	reader := newReader(t)

	records, err := reader.Read(writeLockfile(t, sampleLockfile))
	require.NoError(t, err)
	require.Len(t, records, 4)

	app := records[0]
	require.Equal(t, "app", app.Name.String())
	require.Equal(t, "1.0.0", app.Version.String())
	require.Len(t, app.Dependencies, 2)

	// Bare "foo" resolves against the file's own package set.
	require.Equal(t, "foo", app.Dependencies[0].Name.String())
	require.Equal(t, "0.1.0", app.Dependencies[0].Version.String())

	require.Equal(t, "serde", app.Dependencies[1].Name.String())
	require.Equal(t, "1.0.100", app.Dependencies[1].Version.String())

	// The parenthesized source suffix is dropped.
	foo := records[1]
	require.Len(t, foo.Dependencies, 1)
	require.Equal(t, "serde", foo.Dependencies[0].Name.String())
	require.Equal(t, "1.0.210", foo.Dependencies[0].Version.String())
}

func TestRead_AmbiguousBareNameStaysUnresolved(t *testing.T) {
	reader := newReader(t)

	content := `version = 3

[[package]]
name = "app"
version = "1.0.0"
dependencies = [
 "serde",
]

[[package]]
name = "serde"
version = "1.0.100"

[[package]]
name = "serde"
version = "1.0.210"
`
	records, err := reader.Read(writeLockfile(t, content))
	require.NoError(t, err)

	// Two serde versions exist, so the bare reference cannot be pinned.
	require.Equal(t, "", records[0].Dependencies[0].Version.String())
}

func TestRead_MissingFile(t *testing.T) {
	reader := newReader(t)

	_, err := reader.Read(filepath.Join(t.TempDir(), "Cargo.lock"))
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrLockfileNotFound.Error())
}

func TestRead_MalformedTOML(t *testing.T) {
	reader := newReader(t)

	_, err := reader.Read(writeLockfile(t, "[[package\nname ="))
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrLockfileParseFailed.Error())
}

func TestRead_EmptyPackageName(t *testing.T) {
	reader := newReader(t)

	content := `[[package]]
name = ""
version = "1.0.0"
`
	_, err := reader.Read(writeLockfile(t, content))
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrEmptyPackageName.Error())
}
