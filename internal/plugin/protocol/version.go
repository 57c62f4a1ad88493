// Package protocol checks that a recolorer plugin binary speaks a protocol
// version this host understands.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/foldertint/pkg/plugin"
)

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, label := range []string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid %s version: %s", label, parts[i])
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// IsCompatible checks a plugin's protocol version against this host.
// The major version must match and the version must not be older than
// plugin.MinCompatibleVersion. Newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) (bool, error) {
	pv, err := Parse(pluginVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := Current()
	if pv.Major != current.Major {
		return false, fmt.Errorf(
			"incompatible major version: plugin is %s, host requires %d.x.x",
			pv, current.Major,
		)
	}

	minVersion, err := Parse(plugin.MinCompatibleVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}
	if pv.Less(minVersion) {
		return false, fmt.Errorf("plugin version %s is too old, minimum required is %s", pv, minVersion)
	}

	return true, nil
}

// Current returns the host's protocol version.
func Current() Version {
	v, err := Parse(plugin.ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}
