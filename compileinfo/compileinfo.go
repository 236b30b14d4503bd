// Package compileinfo reports which source revision a binary was built from.
package compileinfo

import (
	"fmt"
	"log"
	"runtime/debug"
)

type Build struct {
	Path      string
	Version   string
	GoVersion string
	Revision  string
	Time      string
	Dirty     bool
}

func (b Build) String() string {
	if b.Path == "" {
		return "build information unavailable"
	}

	out := fmt.Sprintf("%s %s built with %s", b.Path, b.Version, b.GoVersion)
	if b.Revision != "" {
		out += fmt.Sprintf(" at commit %s (%s)", b.Revision, b.Time)
	}
	if b.Dirty {
		out += ", with uncommitted changes"
	}

	return out
}

// Get reads the build information embedded by the go tool.
func Get() Build {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Build{}
	}

	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Build {
	out := Build{
		Path:      info.Main.Path,
		Version:   info.Main.Version,
		GoVersion: info.GoVersion,
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.Time = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// Log writes the build description to the standard logger.
func Log() {
	log.Println(Get())
}
