package app_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dupes/internal/app"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports/mocks"
	"go.trai.ch/dupes/internal/engine/detector"
	"go.uber.org/mock/gomock"
)

func makeRecord(name, version string, deps ...string) domain.PackageRecord {
	refs := make([]domain.DependencyRef, 0, len(deps))
	for _, d := range deps {
		depName, depVersion, _ := strings.Cut(d, " ")
		refs = append(refs, domain.DependencyRef{
			Name:    domain.Intern(depName),
			Version: domain.Intern(depVersion),
		})
	}
	return domain.PackageRecord{
		Name:         domain.Intern(name),
		Version:      domain.Intern(version),
		Dependencies: refs,
	}
}

func duplicatedRecords() []domain.PackageRecord {
	return []domain.PackageRecord{
		makeRecord("app", "1.0.0", "foo 0.1.0", "serde 1.0.210"),
		makeRecord("foo", "0.1.0", "serde 1.0.100"),
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	}
}

type fixture struct {
	reader   *mocks.MockLockfileReader
	loader   *mocks.MockConfigLoader
	logger   *mocks.MockLogger
	registry *mocks.MockRegistry
	stdout   *bytes.Buffer
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		reader:   mocks.NewMockLockfileReader(ctrl),
		loader:   mocks.NewMockConfigLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		registry: mocks.NewMockRegistry(ctrl),
		stdout:   &bytes.Buffer{},
	}

	det := detector.New(f.registry, f.logger)
	f.app = app.New(f.reader, f.loader, det, f.logger).WithStdout(f.stdout)
	return f
}

func TestCheck_OfflineTextReport(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultSettings(), nil)
	f.reader.EXPECT().Read("Cargo.lock").Return(duplicatedRecords(), nil)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "Cargo.lock",
		Offline:      true,
		Color:        "never",
	})
	require.NoError(t, err)

	out := f.stdout.String()
	assert.Contains(t, out, "serde (1.0.100) 1 packages (latest 1.0.210)")
	assert.Contains(t, out, "  - foo (0.1.0) -> app (1.0.0)")
}

func TestCheck_JSONReport(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultSettings(), nil)
	f.reader.EXPECT().Read("Cargo.lock").Return(duplicatedRecords(), nil)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "Cargo.lock",
		Offline:      true,
		Output:       "json",
	})
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &report))
	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "serde", report.Duplicates[0].Package)
	assert.Equal(t, "1.0.100", report.Duplicates[0].Version)
}

func TestCheck_FlagsOverrideConfig(t *testing.T) {
	f := newFixture(t)

	// The file says online; the --offline flag must win, so the registry
	// mock expects no calls.
	settings := domain.DefaultSettings()
	settings.Offline = false
	f.loader.EXPECT().Load(".").Return(settings, nil)
	f.reader.EXPECT().Read("Cargo.lock").Return(duplicatedRecords(), nil)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "Cargo.lock",
		Offline:      true,
		Output:       "json",
	})
	require.NoError(t, err)
}

func TestCheck_UnresolvedDependencyIsWarned(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultSettings(), nil)
	f.reader.EXPECT().Read("Cargo.lock").Return([]domain.PackageRecord{
		makeRecord("d", "1.0.0", "e 9.0.0"),
	}, nil)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "Cargo.lock",
		Offline:      true,
		Output:       "json",
	})
	require.NoError(t, err)
}

func TestCheck_LockfileErrorIsFatal(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultSettings(), nil)
	f.reader.EXPECT().Read("missing.lock").Return(nil, domain.ErrLockfileNotFound)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "missing.lock",
		Offline:      true,
	})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrLockfileNotFound.Error())
}

func TestCheck_ConfigErrorIsFatal(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.Settings{}, errors.New("bad yaml"))

	err := f.app.Check(t.Context(), app.CheckOptions{LockfilePath: "Cargo.lock"})
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to load configuration")
}

func TestCheck_UnknownOutputFormat(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultSettings(), nil)

	err := f.app.Check(t.Context(), app.CheckOptions{
		LockfilePath: "Cargo.lock",
		Output:       "xml",
	})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrUnknownOutputFormat.Error())
}
