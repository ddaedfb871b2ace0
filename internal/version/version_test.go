// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"zero", Info{}, "dev (commit: unknown, built: unknown)"},
		{"tagged", Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"},
			"v1.0.0 (commit: abc1234, built: 2025-01-30T12:00:00Z)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestShort(t *testing.T) {
	assert.Equal(t, "dev", Info{}.Short())
	assert.Equal(t, "v2.1.0", Info{Version: "v2.1.0"}.Short())
}

func TestWithBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
		},
	}

	got := Info{}.withBuildInfo(bi)
	assert.Equal(t, Info{Version: "v0.3.0", GitCommit: "0123456", BuildTime: "2026-02-01T10:00:00Z"}, got)

	// ldflags win
	got = Info{Version: "v1.0.0", GitCommit: "feed"}.withBuildInfo(bi)
	assert.Equal(t, "v1.0.0", got.Version)
	assert.Equal(t, "feed", got.GitCommit)
	assert.Equal(t, "2026-02-01T10:00:00Z", got.BuildTime)

	got = Info{}.withBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", got.Short())
}
