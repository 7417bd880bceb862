package entities

import (
	"sort"
	"strings"
)

// namespaceSeparator joins namespace segments inside a project's
// human-readable name, e.g. "Group / Subgroup / Project".
const namespaceSeparator = " / "

// VisibilityPublic is the only visibility value that produces a public
// repository on the destination; everything else is migrated as private.
const VisibilityPublic = "public"

// Project represents a repository on the source platform. Instances are
// produced by a SourceRepository and are read-only downstream.
type Project struct {
	ID                int64
	Name              string
	NameWithNamespace string // "Group / Subgroup / Project"
	Path              string
	NamespacePath     string
	PathWithNamespace string // "group/subgroup/project"
	HTTPURLToRepo     string
	Description       string
	Visibility        string
}

// CompareProjectNames orders two namespaced display names segment by
// segment. A name that is a pure prefix of a deeper one sorts first, so
// "A" precedes "A / B" regardless of what a plain string comparison of
// the trailing characters would say.
func CompareProjectNames(first, second string) int {
	firstSegments := strings.Split(first, namespaceSeparator)
	secondSegments := strings.Split(second, namespaceSeparator)

	for index := 0; index < len(firstSegments) && index < len(secondSegments); index++ {
		if comparison := strings.Compare(firstSegments[index], secondSegments[index]); comparison != 0 {
			return comparison
		}
	}

	switch {
	case len(firstSegments) < len(secondSegments):
		return -1
	case len(firstSegments) > len(secondSegments):
		return 1
	default:
		return 0
	}
}

// SortProjects orders projects by their namespaced display name so that
// selection indices are deterministic. The sort is stable: names that
// compare equal keep their listing order.
func SortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return CompareProjectNames(projects[i].NameWithNamespace, projects[j].NameWithNamespace) < 0
	})
}
