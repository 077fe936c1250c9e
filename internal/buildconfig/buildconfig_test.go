package buildconfig

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_Defaults(t *testing.T) {
	info := Current()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "v1.2.0", Commit: "abc123", GoVersion: "go1.25.5"}
	assert.Equal(t, "notely v1.2.0 (abc123, go1.25.5)", info.String())
}
