package forwarder

import "runtime"

const (
	packageID      = "lambdarelay/"
	packageVersion = "0.1.0"
)

// BuildUserAgent identifies the relay, Go runtime and platform.
func BuildUserAgent() string {
	return packageID + packageVersion + ";" + runtime.Version() + ";" + runtime.GOOS + ";arch " + runtime.GOARCH
}
