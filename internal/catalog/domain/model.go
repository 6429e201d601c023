package domain

import "time"

// Status is the delivery stage shown on a project card.
type Status string

const (
	StatusShipped     Status = "Shipped"
	StatusInBeta      Status = "In Beta"
	StatusExploration Status = "Exploration"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusShipped, StatusInBeta, StatusExploration}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Link is an outbound reference rendered on a project page.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Project is a single catalog entry. ID never changes; Slug may be renamed.
type Project struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Year        int       `json:"year"`
	Status      Status    `json:"status"`
	Tech        []string  `json:"tech"`
	Tags        []string  `json:"tags,omitempty"`
	Links       []Link    `json:"links"`
	Featured    bool      `json:"featured"`
	Metrics     *string   `json:"metrics,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy so cached snapshots cannot be mutated by callers.
func (p Project) Clone() Project {
	out := p
	out.Tech = append([]string(nil), p.Tech...)
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	out.Links = append([]Link(nil), p.Links...)
	if p.Metrics != nil {
		m := *p.Metrics
		out.Metrics = &m
	}
	if p.Image != nil {
		img := *p.Image
		out.Image = &img
	}
	return out
}

// CloneAll deep-copies a slice of projects.
func CloneAll(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// ProjectInput is the validated, typed payload for a create or update.
type ProjectInput struct {
	Slug        string
	Title       string
	Summary     string
	Description string
	Category    string
	Year        int
	Status      Status
	Tech        []string
	Tags        []string
	Links       []Link
	Featured    bool
	Metrics     *string
	// ImageURL is an explicit image reference typed into the form.
	ImageURL *string
}

// ImageMode says what an update does with the stored image reference.
type ImageMode int

const (
	ImageKeep ImageMode = iota
	ImageSet
	ImageClear
)

// ImageChange is the resolved image instruction handed to the store.
type ImageChange struct {
	Mode ImageMode
	URL  string
}

// ProjectUpdate is the validated payload for editing an existing project.
type ProjectUpdate struct {
	ID          string
	CurrentSlug string
	Input       ProjectInput
	RemoveImage bool
}

// DeleteRequest identifies a project to remove. Slug only drives cache invalidation.
type DeleteRequest struct {
	ID   string
	Slug string
}
