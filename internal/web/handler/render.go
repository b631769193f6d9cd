package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-rbac-admin/go-rbac-admin/internal/authz"
	"github.com/go-rbac-admin/go-rbac-admin/internal/rbac"
	"github.com/go-rbac-admin/go-rbac-admin/internal/session"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/navigation"
)

// ViewData builds the render map common to every authenticated page:
// the fresh session snapshot, the navigation context, the queued flash,
// and predicate closures for conditional rendering in templates.
// The session is read fresh per render; templates must not assume it
// matches any earlier read.
func ViewData(c *fiber.Ctx, deps *Deps, nav *navigation.Context) fiber.Map {
	sess := deps.Store.Current(c)

	return fiber.Map{
		"Title":      deps.Cfg.Title,
		"Navigation": nav,
		"Session":    sess,
		"Flash":      TakeFlash(c),
		"HasPermission": func(permission string) bool {
			return authz.HasPermission(sess, permission)
		},
		"HasAnyPermission": func(permissions ...string) bool {
			return authz.HasAnyPermission(sess, permissions)
		},
		"Initials": sessionInitials(sess),
	}
}

// CacheOwner returns the identity cached backend responses are scoped to.
// Empty without a session; the cache then still never crosses identities
// because anonymous requests cannot reach cached pages past the guard.
func CacheOwner(c *fiber.Ctx, deps *Deps) string {
	if sess := deps.Store.Current(c); sess != nil {
		return sess.UserID
	}

	return ""
}

func sessionInitials(s *session.Session) string {
	if s == nil {
		return authz.Initials("", "")
	}

	return authz.Initials(s.FirstName, s.LastName)
}

// Pagination carries the derived paging state for a list template.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Search     string
	SortBy     string
	SortOrder  string
}

// NewPagination derives paging controls from the backend meta block.
// Prev is disabled on the first page and Next on the last.
func NewPagination(meta *rbac.Meta, params rbac.ListParams) Pagination {
	p := Pagination{
		Page:      params.Page,
		PageSize:  params.Limit,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
	}

	if meta != nil {
		p.TotalItems = meta.Total
		p.TotalPages = meta.TotalPages
	}

	if p.TotalPages < 1 {
		p.TotalPages = 1
	}

	p.HasPrev = p.Page > 1
	p.HasNext = p.Page < p.TotalPages
	p.PrevPage = p.Page - 1
	p.NextPage = p.Page + 1

	return p
}

// ListParamsFromQuery reads the uniform list query parameters.
func ListParamsFromQuery(c *fiber.Ctx) rbac.ListParams {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", DefaultPageSize)
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	sortOrder := c.Query("sortOrder", "")
	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return rbac.ListParams{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search", ""),
		SortBy:    c.Query("sortBy", ""),
		SortOrder: sortOrder,
	}
}
