package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/query"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/logging"
)

func (h *Handler) browse(c *gin.Context) {
	state := stateFromQuery(c)

	res, err := h.catalog.Browse(c.Request.Context(), &state)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("BrowseProjects", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"projects":      res.Items,
		"facets":        res.Facets,
		"total_matched": res.TotalMatched,
		"total":         res.TotalAll,
		"page":          res.PageIndex,
		"page_count":    res.PageCount,
		"page_size":     res.PageSize,
		"start_index":   res.StartIndex,
		"end_index":     res.EndIndex,
		"filtered":      state.Criteria().HasActiveFilters(),
	})
}

func (h *Handler) project(c *gin.Context) {
	p, err := h.catalog.Project(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("GetProject", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "language": query.PrimaryLanguage(p)})
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("CatalogStats", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": st})
}

// stateFromQuery maps ?q=&year=&category=&language=&tag=&page=&page_size= onto
// a browse session. Facet parameters may repeat.
func stateFromQuery(c *gin.Context) query.State {
	size, _ := strconv.Atoi(c.Query("page_size"))
	if !validPageSize(size) {
		size = query.DefaultPageSize
	}
	state := query.NewState(size)
	state.SetSearch(c.Query("q"))

	for _, y := range query.ParseYears(distinct(c.QueryArray("year"))) {
		state.ToggleYear(y)
	}
	for _, v := range distinct(c.QueryArray("category")) {
		state.ToggleCategory(v)
	}
	for _, v := range distinct(c.QueryArray("language")) {
		state.ToggleLanguage(v)
	}
	for _, v := range distinct(c.QueryArray("tag")) {
		state.ToggleTag(v)
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		state.GoToPage(page)
	}
	return state
}

func validPageSize(n int) bool {
	for _, s := range query.PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// distinct drops repeated values so a repeated parameter does not toggle itself off.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
