package format

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildType is the single-letter Unity channel marker extracted from an
// engine version string (e.g. "2019.4.1f1" -> 'f').
type BuildType byte

const (
	BuildTypeUnknown BuildType = 0
	BuildTypeFinal   BuildType = 'f'
	BuildTypePatch   BuildType = 'p'
	BuildTypeBeta    BuildType = 'b'
	BuildTypeAlpha   BuildType = 'a'
)

func (b BuildType) String() string {
	if b == BuildTypeUnknown {
		return "unknown"
	}

	return string(rune(b))
}

// Version is the [major, minor, patch, build] engine version tuple parsed
// out of a serialized file's engine-version string. It's directly
// comparable with AtLeast, centralizing the long version-gated field
// schedules described throughout the class readers.
type Version struct {
	Major, Minor, Patch, Build int
	BuildType                 BuildType
}

// ParseVersion parses an engine version string such as "2019.4.1f1" into a
// Version. Non-numeric runs are treated as field separators; the first
// alphabetic character encountered becomes the BuildType marker. Each
// numeric run fills the next of major, minor, patch and build in order
// (the "1" in "f1" is the build), runs past the fourth are ignored, and
// missing fields are 0.
func ParseVersion(s string) Version {
	var v Version

	var numBuf strings.Builder
	fields := make([]int, 0, 4)
	var buildType BuildType

	flush := func() {
		if numBuf.Len() == 0 {
			return
		}
		n, _ := strconv.Atoi(numBuf.String())
		fields = append(fields, n)
		numBuf.Reset()
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			numBuf.WriteRune(r)
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			flush()
			if buildType == BuildTypeUnknown {
				buildType = BuildType(r)
			}
		default:
			flush()
		}
	}
	flush()

	for len(fields) < 4 {
		fields = append(fields, 0)
	}

	v.Major, v.Minor, v.Patch, v.Build = fields[0], fields[1], fields[2], fields[3]
	v.BuildType = buildType

	return v
}

// AtLeast reports whether v is greater than or equal to the version formed
// by parts, compared component-wise in [major, minor, patch, build] order.
// Missing trailing parts default to 0, so AtLeast(2017, 3) checks only
// major/minor.
func (v Version) AtLeast(parts ...int) bool {
	want := [4]int{}
	for i, p := range parts {
		if i >= 4 {
			break
		}
		want[i] = p
	}

	got := [4]int{v.Major, v.Minor, v.Patch, v.Build}
	for i := 0; i < 4; i++ {
		if got[i] != want[i] {
			return got[i] > want[i]
		}
	}

	return true
}

// Less reports whether v is strictly less than the version formed by parts.
func (v Version) Less(parts ...int) bool {
	return !v.AtLeast(parts...)
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.BuildType != BuildTypeUnknown {
		s += fmt.Sprintf("%s%d", v.BuildType, v.Build)
	}

	return s
}
