package domain

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// ParseVersion parses a version string with full semver precedence
// (major, minor, patch, pre-release tags).
func ParseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.StrictNewVersion(v)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrVersionParseFailed.Error()), "version", v)
	}
	return parsed, nil
}

// MaxVersion returns the highest version among the entries by semver
// precedence. This is the offline reference version: "duplicate" in offline
// mode means duplicated relative to the highest version present in the lock
// file, not relative to an externally-known latest.
func MaxVersion(entries []*VersionEntry) (string, error) {
	var maxVer *semver.Version
	for _, entry := range entries {
		v, err := ParseVersion(entry.Version.String())
		if err != nil {
			return "", err
		}
		if maxVer == nil || v.GreaterThan(maxVer) {
			maxVer = v
		}
	}
	if maxVer == nil {
		return "", ErrVersionParseFailed
	}
	return maxVer.Original(), nil
}
