package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Version is the calendar version <year>.<month>.<seq> of a tag.
type Version struct {
	*semver.Version
}

// NewVersion creates the calendar version for a tag.
func NewVersion(year, month, seq int) *Version {
	return &Version{semver.New(uint64(year), uint64(month), uint64(seq), "", "")}
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// String returns the version without prefix.
func (v *Version) String() string {
	return v.Version.String()
}
