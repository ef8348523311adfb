// Package navigation derives the breadcrumb trail for project-scoped
// resources: project, then module, then record.
package navigation

import "fmt"

// Crumb is one entry in a breadcrumb trail. The current page has no URL.
type Crumb struct {
	Title string  `json:"title"`
	URL   *string `json:"url"`
}

// Trail is an ordered breadcrumb sequence.
type Trail []Crumb

// Builder accumulates a trail from the resource hierarchy.
type Builder struct {
	crumbs Trail
}

// NewBuilder creates an empty breadcrumb builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Link appends a navigable crumb.
func (b *Builder) Link(title, url string) *Builder {
	b.crumbs = append(b.crumbs, Crumb{Title: title, URL: &url})
	return b
}

// Current appends the terminal crumb for the page being rendered.
func (b *Builder) Current(title string) *Builder {
	b.crumbs = append(b.crumbs, Crumb{Title: title})
	return b
}

// Build returns the trail. An empty builder yields an empty, non-nil trail
// so it always renders as a JSON array.
func (b *Builder) Build() Trail {
	if b.crumbs == nil {
		return Trail{}
	}
	return b.crumbs
}

// ProjectTrail starts a trail at the project list and the named project.
func ProjectTrail(projectName, projectURL string) *Builder {
	b := NewBuilder()
	b.Link("Projects", "/projects")
	b.Link(projectName, projectURL)
	return b
}

// ModuleTrail extends a project trail with a module list page, e.g.
// "Contract Variations" under /projects/<id>/variations.
func ModuleTrail(projectName, projectURL, moduleName, moduleURL string) *Builder {
	return ProjectTrail(projectName, projectURL).Link(moduleName, moduleURL)
}

// RecordTrail is the full project -> module -> record hierarchy with the
// record as the current page.
func RecordTrail(projectName, projectURL, moduleName, moduleURL, recordTitle string) Trail {
	return ModuleTrail(projectName, projectURL, moduleName, moduleURL).
		Current(recordTitle).
		Build()
}

// ProjectURL renders the canonical project detail path.
func ProjectURL(projectID string) string {
	return fmt.Sprintf("/projects/%s", projectID)
}

// ModuleURL renders a module list path under a project.
func ModuleURL(projectID, module string) string {
	return fmt.Sprintf("/projects/%s/%s", projectID, module)
}
