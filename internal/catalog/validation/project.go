// Package validation converts untrusted admin form input into typed catalog
// payloads. Errors are reported per field so the form can be re-rendered.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

// Form is the raw field map posted by the admin form.
type Form map[string]string

func (f Form) get(key string) string {
	return strings.TrimSpace(f[key])
}

const (
	defaultLiveLabel = "Live"
	defaultRepoLabel = "GitHub"
	minYear          = 1900
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	validate    = validator.New()

	requiredFields = []string{"title", "slug", "summary", "description", "category", "year", "status", "tech"}
)

// Project validates a create submission.
func Project(form Form) (domain.ProjectInput, error) {
	verr := &domain.ValidationError{}
	in := projectInput(form, verr)
	if !verr.Empty() {
		return domain.ProjectInput{}, verr
	}
	return in, nil
}

// Update validates an edit submission. projectId and currentSlug identify the
// stored record; removeImage must be explicit to clear an image.
func Update(form Form) (domain.ProjectUpdate, error) {
	verr := &domain.ValidationError{}
	id := projectID(form, verr)
	current := form.get("currentSlug")
	if current == "" {
		verr.Add("currentSlug", "Required")
	}
	in := projectInput(form, verr)
	if !verr.Empty() {
		return domain.ProjectUpdate{}, verr
	}
	return domain.ProjectUpdate{
		ID:          id,
		CurrentSlug: current,
		Input:       in,
		RemoveImage: checked(form["removeImage"]),
	}, nil
}

// Delete validates a removal request.
func Delete(form Form) (domain.DeleteRequest, error) {
	verr := &domain.ValidationError{}
	req := domain.DeleteRequest{ID: projectID(form, verr), Slug: form.get("slug")}
	if req.Slug == "" {
		verr.Add("slug", "Required")
	}
	if !verr.Empty() {
		return domain.DeleteRequest{}, verr
	}
	return req, nil
}

// projectID reads the stored record id, which must be a UUID.
func projectID(form Form, verr *domain.ValidationError) string {
	id := form.get("projectId")
	if id == "" {
		verr.Add("projectId", "Required")
		return ""
	}
	if _, err := uuid.Parse(id); err != nil {
		verr.Add("projectId", "Invalid id")
		return ""
	}
	return id
}

func projectInput(form Form, verr *domain.ValidationError) domain.ProjectInput {
	for _, f := range requiredFields {
		if form.get(f) == "" {
			verr.Add(f, "Required")
		}
	}

	in := domain.ProjectInput{
		Slug:        form.get("slug"),
		Title:       form.get("title"),
		Summary:     form.get("summary"),
		Description: form.get("description"),
		Category:    form.get("category"),
		Status:      domain.Status(form.get("status")),
		Tech:        SplitList(form["tech"]),
		Tags:        SplitList(form["tags"]),
		Featured:    checked(form["featured"]),
	}

	if in.Slug != "" && !slugPattern.MatchString(in.Slug) {
		verr.Add("slug", "Use lowercase letters, numbers and dashes only")
	}

	if raw := form.get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("year", "Expected a whole number")
		case year < minYear:
			verr.Add("year", "Must be 1900 or later")
		default:
			in.Year = year
		}
	}

	if in.Status != "" && !in.Status.Valid() {
		verr.Add("status", "Must be one of Shipped, In Beta, Exploration")
	}

	if form.get("tech") != "" && len(in.Tech) == 0 {
		verr.Add("tech", "List at least one technology")
	}

	if m := form.get("metrics"); m != "" {
		in.Metrics = &m
	}

	if u := form.get("imageUrl"); u != "" {
		if isURL(u) {
			in.ImageURL = &u
		} else {
			verr.Add("imageUrl", "Invalid url")
		}
	}

	in.Links = links(form, verr)
	return in
}

// links builds the ordered link list: the live link, then the repository link.
func links(form Form, verr *domain.ValidationError) []domain.Link {
	out := make([]domain.Link, 0, 2)
	add := func(hrefKey, labelKey, fallback string) {
		href := form.get(hrefKey)
		if href == "" {
			return
		}
		if !isURL(href) {
			verr.Add(hrefKey, "Invalid url")
			return
		}
		label := form.get(labelKey)
		if label == "" {
			label = fallback
		}
		out = append(out, domain.Link{Label: label, Href: href})
	}
	add("liveHref", "liveLabel", defaultLiveLabel)
	add("repoHref", "repoLabel", defaultRepoLabel)

	if form.get("liveHref") == "" && form.get("repoHref") == "" {
		verr.Add("links", "Please provide at least one link")
	}
	return out
}

// SplitList splits a comma-separated field into trimmed, non-empty tokens.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isURL(s string) bool {
	return validate.Var(s, "url") == nil
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
