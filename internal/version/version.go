// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version describes the running build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Unknown fills fields that neither ldflags nor the toolchain provided.
const Unknown = "unknown"

// Info identifies a build of the server.
type Info struct {
	Version   string // release tag, e.g. "v1.2.3"
	GitCommit string
	BuildTime string // RFC3339
}

// Resolve fills empty fields from the VCS stamp the Go toolchain embeds.
func (i Info) Resolve() Info {
	if bi, ok := debug.ReadBuildInfo(); ok {
		i = i.withBuildInfo(bi)
	}
	return i
}

func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value
				if len(i.GitCommit) > 7 {
					i.GitCommit = i.GitCommit[:7]
				}
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		}
	}
	return i
}

// Short is the version reported by /health; "dev" for untagged builds.
func (i Info) Short() string {
	if i.Version == "" {
		return "dev"
	}
	return i.Version
}

// String renders the line printed by -version.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Short(), orUnknown(i.GitCommit), orUnknown(i.BuildTime))
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
