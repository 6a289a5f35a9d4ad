package response

import (
	"net/url"
	"strconv"
	"strings"

	"catalog/internal/models"
)

// Link is one hypermedia action.
type Link struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

type Links struct {
	Self       string           `json:"self"`
	Related    map[string]Link  `json:"related,omitempty"`
	Pagination *PaginationLinks `json:"pagination,omitempty"`
}

type PaginationLinks struct {
	First string `json:"first"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// PageContext carries already computed pagination facts. Query holds the
// extra parameters (limit, filters) repeated on every page link.
type PageContext struct {
	CurrentPage int
	TotalPages  int // zero means unknown
	HasNext     bool
	HasPrev     bool
	Query       url.Values
}

// NewPageContext copies the facts of p.
func NewPageContext(p models.Pagination, query url.Values) *PageContext {
	return &PageContext{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
		Query:       query,
	}
}

// LinkContext describes the resource a response is about.
type LinkContext struct {
	BaseURL      string
	ResourceID   string // empty for collections
	UpdateMethod string // defaults to PATCH
	Page         *PageContext
}

// GenerateLinks builds the links for ctx. It never derives pagination
// facts itself.
func GenerateLinks(ctx LinkContext) *Links {
	base := strings.TrimRight(ctx.BaseURL, "/")
	links := &Links{Related: make(map[string]Link)}

	if ctx.ResourceID != "" {
		item := base + "/" + url.PathEscape(ctx.ResourceID)
		method := ctx.UpdateMethod
		if method == "" {
			method = "PATCH"
		}
		links.Self = item
		links.Related["update"] = Link{Href: item, Method: method}
		links.Related["delete"] = Link{Href: item, Method: "DELETE"}
		links.Related["collection"] = Link{Href: base, Method: "GET"}
	} else {
		links.Self = base
		links.Related["create"] = Link{Href: base, Method: "POST"}
	}

	if p := ctx.Page; p != nil {
		pl := &PaginationLinks{First: pageURL(base, 1, p.Query)}
		if p.TotalPages > 0 {
			pl.Last = pageURL(base, p.TotalPages, p.Query)
		}
		if p.HasPrev && p.CurrentPage > 1 {
			pl.Prev = pageURL(base, p.CurrentPage-1, p.Query)
		}
		if p.HasNext {
			pl.Next = pageURL(base, p.CurrentPage+1, p.Query)
		}
		links.Pagination = pl
	}

	return links
}

// pageURL renders base?page=N followed by the extra parameters in key order.
func pageURL(base string, page int, query url.Values) string {
	href := base + "?page=" + strconv.Itoa(page)
	if len(query) == 0 {
		return href
	}
	rest := make(url.Values, len(query))
	for k, v := range query {
		if k != "page" {
			rest[k] = v
		}
	}
	if encoded := rest.Encode(); encoded != "" {
		href += "&" + encoded
	}
	return href
}
