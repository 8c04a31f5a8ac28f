// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/foodstack/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/foodstack/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/foodstack/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The versions of the embedded ingredient catalogs are reported alongside, so
// a rendered frame can be traced back to the exact tables that produced it.
package buildinfo

import (
	"fmt"
	"strings"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Catalogs lists the embedded catalogs with their table versions, for
// example "burger v1, pizza v1".
func Catalogs() string {
	var parts []string
	for _, dish := range catalog.Dishes() {
		cat, err := catalog.Default(dish)
		if err != nil {
			parts = append(parts, dish+" (invalid)")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s v%d", dish, cat.Version()))
	}
	return strings.Join(parts, ", ")
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ncatalogs: %s", Version, Commit, Date, Catalogs())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\ncatalogs: %s\n", Version, Commit, Date, Catalogs())
}
