// Package version holds the tm version string, overridden at build time via
//
//	go build -ldflags "-X github.com/srivarthinivelu/tender-poc/pkg/version.Version=v1.2.3"
package version

// Version is the current tm version.
var Version = "dev"
