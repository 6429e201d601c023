package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
)

// Stats summarises the catalog for the landing page.
type Stats struct {
	Total      int             `json:"total"`
	Featured   int             `json:"featured"`
	Categories int             `json:"categories"`
	Latest     *domain.Project `json:"latest,omitempty"`
}

func Summarize(records []domain.Project) Stats {
	st := Stats{Total: len(records)}
	cats := map[string]struct{}{}
	for _, p := range records {
		if p.Featured {
			st.Featured++
		}
		cats[p.Category] = struct{}{}
	}
	st.Categories = len(cats)
	st.Latest = latest(records)
	return st
}

// latest is the newest project by year, ties broken by title. Featured
// projects get no precedence here.
func latest(records []domain.Project) *domain.Project {
	if len(records) == 0 {
		return nil
	}
	col := collate.New(language.English, collate.IgnoreCase)
	best := records[0]
	for _, p := range records[1:] {
		if p.Year > best.Year || (p.Year == best.Year && col.CompareString(p.Title, best.Title) < 0) {
			best = p
		}
	}
	out := best.Clone()
	return &out
}

// PrimaryLanguage picks the label shown on a project card: the first known
// language in tech, then in tags, then the first tech entry, then the category.
func PrimaryLanguage(p domain.Project) string {
	for _, t := range p.Tech {
		if isKnownLanguage(t) {
			return t
		}
	}
	for _, t := range p.Tags {
		if isKnownLanguage(t) {
			return t
		}
	}
	if len(p.Tech) > 0 {
		return p.Tech[0]
	}
	return p.Category
}
