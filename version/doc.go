// Package version provides build version information and the user agent the
// SDK identifies itself with.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/paygate/version.Version=1.0.0"
package version
