package cache

import "strings"

// TagProjects is carried by every catalog cache entry.
const TagProjects = "projects"

const slugTagPrefix = "project:"

// SlugTag is the tag of the by-slug entry for slug.
func SlugTag(slug string) string {
	return slugTagPrefix + slug
}

type keyKind int

const (
	kindAll keyKind = iota
	kindSlug
)

// Key is a stable query identity plus the tags that invalidate it.
type Key struct {
	ID   string
	Tags []string

	kind keyKind
	slug string
}

// AllProjectsKey identifies the full catalog listing.
func AllProjectsKey() Key {
	return Key{ID: "projects:all", Tags: []string{TagProjects}, kind: kindAll}
}

// ProjectKey identifies a single project looked up by slug.
func ProjectKey(slug string) Key {
	return Key{
		ID:   "projects:slug:" + slug,
		Tags: []string{TagProjects, SlugTag(slug)},
		kind: kindSlug,
		slug: slug,
	}
}

// MutationTags returns the tags a write must invalidate. For a rename both the
// old and the new slug are included.
func MutationTags(oldSlug, newSlug string) []string {
	tags := []string{TagProjects}
	if oldSlug != "" {
		tags = append(tags, SlugTag(oldSlug))
	}
	if newSlug != "" && newSlug != oldSlug {
		tags = append(tags, SlugTag(newSlug))
	}
	return tags
}

// tagKind collapses per-slug tags into one label value for metrics.
func tagKind(tag string) string {
	if strings.HasPrefix(tag, slugTagPrefix) {
		return "project"
	}
	return tag
}

func queryLabel(k Key) string {
	if k.kind == kindSlug {
		return "project_by_slug"
	}
	return "all_projects"
}
