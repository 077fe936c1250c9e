// Package buildconfig exposes values stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/Harshitk-cp/notely/internal/buildconfig.version=v1.0.0 \
//	  -X github.com/Harshitk-cp/notely/internal/buildconfig.commit=$(git rev-parse --short HEAD)"
package buildconfig

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"goVersion"`
}

func Current() Info {
	return Info{
		Version:   version,
		Commit:    commit,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("notely %s (%s, %s)", i.Version, i.Commit, i.GoVersion)
}
