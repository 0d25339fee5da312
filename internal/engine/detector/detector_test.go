package detector_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
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

func offlineSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Offline = true
	return s
}

func TestDetect_SingleVersionIsNeverADuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := detector.New(mocks.NewMockRegistry(ctrl), mocks.NewMockLogger(ctrl))

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("app", "1.0.0", "serde 1.0.210"),
		makeRecord("serde", "1.0.210"),
	})

	report, err := d.Detect(t.Context(), ix, offlineSettings())
	require.NoError(t, err)
	require.Empty(t, report.Duplicates)
	require.Empty(t, report.Diagnostics)
}

func TestDetect_OfflineReferenceIsLocalMaximum(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := detector.New(mocks.NewMockRegistry(ctrl), mocks.NewMockLogger(ctrl))

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("app", "1.0.0", "foo 0.1.0", "serde 1.0.210"),
		makeRecord("foo", "0.1.0", "serde 1.0.100"),
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	})

	report, err := d.Detect(t.Context(), ix, offlineSettings())
	require.NoError(t, err)
	require.Len(t, report.Duplicates, 1)

	occ := report.Duplicates[0]
	require.Equal(t, "serde", occ.Package)
	require.Equal(t, "1.0.100", occ.Version)
	require.Equal(t, "1.0.210", occ.Latest)
	require.Len(t, occ.Users, 1)
	require.Equal(t, "foo", occ.Users[0].Name)
	require.Equal(t, []string{"foo (0.1.0)", "app (1.0.0)"}, occ.Users[0].Chain)
	require.False(t, occ.Users[0].Cycle)
}

func TestDetect_OnlineReferenceComesFromRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Latest(gomock.Any(), "serde").Return("1.0.219", nil)

	d := detector.New(registry, mocks.NewMockLogger(ctrl))

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	})

	report, err := d.Detect(t.Context(), ix, domain.DefaultSettings())
	require.NoError(t, err)

	// Neither local version matches the registry's newest, so both are stale.
	require.Len(t, report.Duplicates, 2)
	require.Equal(t, "1.0.100", report.Duplicates[0].Version)
	require.Equal(t, "1.0.219", report.Duplicates[0].Latest)
	require.Equal(t, "1.0.210", report.Duplicates[1].Version)
	require.Equal(t, "1.0.219", report.Duplicates[1].Latest)
}

func TestDetect_RegistryFailureFallsBackToLocalMaximum(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Latest(gomock.Any(), "serde").Return("", errors.New("boom"))

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	d := detector.New(registry, logger)

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	})

	report, err := d.Detect(t.Context(), ix, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, report.Duplicates, 1)
	require.Equal(t, "1.0.210", report.Duplicates[0].Latest)
}

func TestDetect_UnparseableRegistryVersionFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Latest(gomock.Any(), "serde").Return("latest-and-greatest", nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	d := detector.New(registry, logger)

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	})

	report, err := d.Detect(t.Context(), ix, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, report.Duplicates, 1)
	require.Equal(t, "1.0.210", report.Duplicates[0].Latest)
}

func TestDetect_UnparseableLocalVersionIsDiagnosed(t *testing.T) {
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	d := detector.New(mocks.NewMockRegistry(ctrl), logger)

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("weird", "1.0"),
		makeRecord("weird", "2.0"),
	})

	report, err := d.Detect(t.Context(), ix, offlineSettings())
	require.NoError(t, err)
	require.Empty(t, report.Duplicates)
	require.Len(t, report.Diagnostics, 1)
	require.Equal(t, domain.DiagInvalidVersion, report.Diagnostics[0].Kind)
	require.Equal(t, "weird", report.Diagnostics[0].Package)
}

func TestDetect_UnresolvedEdgesCarryThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := detector.New(mocks.NewMockRegistry(ctrl), mocks.NewMockLogger(ctrl))

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("d", "1.0.0", "e 9.0.0"),
	})

	report, err := d.Detect(t.Context(), ix, offlineSettings())
	require.NoError(t, err)
	require.Len(t, report.Diagnostics, 1)
	require.Equal(t, domain.DiagUnresolvedDependency, report.Diagnostics[0].Kind)
}

func TestDetect_CancellationAbortsOnlineRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctrl)
	registry.EXPECT().Latest(gomock.Any(), "serde").DoAndReturn(
		func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}).AnyTimes()

	d := detector.New(registry, mocks.NewMockLogger(ctrl))

	ix := domain.BuildIndex([]domain.PackageRecord{
		makeRecord("serde", "1.0.100"),
		makeRecord("serde", "1.0.210"),
	})

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	settings := domain.DefaultSettings()
	settings.Timeout = 0

	_, err := d.Detect(ctx, ix, settings)
	require.ErrorIs(t, err, context.Canceled)
}
