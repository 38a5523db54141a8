// Package misc holds build time information.
package misc

// Set with -ldflags "-X obc/misc.version=... -X obc/misc.gitHash=..."
var (
	appName = "obc"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
