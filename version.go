package jsonmap

import "runtime/debug"

const version = "0.1.0" // version of jsonmap
const revisionSize = 7

// VersionInfo holds the version of jsonmap and VCS info.
type VersionInfo struct {
	Version string // version of jsonmap
	// VCS info
	Revision     string
	Time         string
	Experimental string
}

// GetVersionInfo returns VersionInfo of jsonmap.
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version: version,
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Revision = setting.Value
				if len(info.Revision) >= revisionSize {
					info.Revision = info.Revision[:revisionSize]
				}
			case "vcs.time":
				info.Time = setting.Value
			case "vcs.modified":
				info.Experimental = setting.Value
			}
		}
	}
	return info
}
