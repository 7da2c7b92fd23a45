package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo_String(t *testing.T) {
	b := BuildInfo{Version: "v0.3.0", Commit: "0123456789abcdef", Date: "2024-05-01"}
	assert.Equal(t, "0123456", b.ShortCommit())
	assert.Equal(t, "v0.3.0 (0123456) 2024-05-01", b.String())

	assert.Equal(t, "HEAD", BuildInfo{Commit: "HEAD"}.ShortCommit())
}

func TestResolveBuild_KeepsLdflags(t *testing.T) {
	b := ResolveBuild("v1.2.3", "abc", "now")
	assert.Equal(t, BuildInfo{Version: "v1.2.3", Commit: "abc", Date: "now"}, b)
}
