package satcam

import (
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/psat2/satcam/src.SATCAM_VERSION=X'"`
var SATCAM_VERSION string

// buildVersion is what the binary knows about where it came from.
type buildVersion struct {
	Version  string
	Revision string
	Time     string
	Deps     []*debug.Module
}

func readBuildVersion(bi *debug.BuildInfo) buildVersion {
	var v = buildVersion{
		Version:  SATCAM_VERSION,
		Revision: "UNKNOWN",
		Time:     "UNKNOWN",
	}
	if v.Version == "" {
		v.Version = "!UNKNOWN!"
	}

	if bi == nil {
		return v
	}
	v.Deps = bi.Deps

	var modified = "INVALID"
	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs.revision":
			v.Revision = bs.Value
		case "vcs.time":
			v.Time = bs.Value
		case "vcs.modified":
			modified = bs.Value
		}
	}

	if dirty, err := strconv.ParseBool(modified); err != nil {
		v.Revision += "-UNKNOWNDIRTY"
	} else if dirty {
		v.Revision += "-DIRTY"
	}

	return v
}

// printVersion writes the banner, and with verbose the versions of
// the audio, PTT and image libraries linked in.
func printVersion(w io.Writer, verbose bool) {
	var bi, _ = debug.ReadBuildInfo()
	var v = readBuildVersion(bi)

	fmt.Fprintf(w, "satcam - Version %s (revision %s, built at %s)\n", v.Version, v.Revision, v.Time)

	if verbose {
		for _, dep := range v.Deps {
			fmt.Fprintf(w, "  %s %s\n", dep.Path, dep.Version)
		}
	}
}
