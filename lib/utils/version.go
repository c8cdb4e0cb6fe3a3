package utils

import (
	"github.com/Masterminds/semver/v3"
)

// IsUpdateAvailable returns true if the latest version is strictly newer than
// the current version. Non-semver current versions (like commit hashes) are
// treated as development builds and considered up-to-date.
func IsUpdateAvailable(current, latest string) bool {
	if latest == "" {
		return false
	}

	currVer, errCurr := semver.NewVersion(current)
	lateVer, errLate := semver.NewVersion(latest)

	if errCurr == nil && errLate == nil {
		return lateVer.GreaterThan(currVer)
	}

	return false
}
