package common

// Version is set at build time via -ldflags "-X ...common.version=x.y.z"
var version = "0.3.1"

// GetVersion returns the application version string.
func GetVersion() string {
	return version
}
