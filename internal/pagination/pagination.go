// Package pagination slices ordered result sets into numbered pages.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "taskmanager/internal/errors"
)

const (
	// ParamPage selects the 1-based page number.
	ParamPage = "page"
	// ParamPageSize overrides the configured page size.
	ParamPageSize = "page_size"

	lastPage = "last"
)

// Pager holds the page size policy.
type Pager struct {
	defaultSize int
	maxSize     int
}

// New creates a pager. A non-positive maxSize disables the cap.
func New(defaultSize, maxSize int) *Pager {
	if defaultSize <= 0 {
		defaultSize = 10
	}
	return &Pager{defaultSize: defaultSize, maxSize: maxSize}
}

// Request is the page a caller asked for. Last is set for page=last.
type Request struct {
	Page int
	Size int
	Last bool
}

// Page describes one resolved page of a result set.
type Page struct {
	Count    int64
	Number   int
	Size     int
	NumPages int
}

// Parse reads page and page_size. An unusable page number is a not-found
// condition; an unusable page_size falls back to the default.
func (p *Pager) Parse(params url.Values) (Request, error) {
	req := Request{Page: 1, Size: p.size(params.Get(ParamPageSize))}

	raw := strings.TrimSpace(params.Get(ParamPage))
	switch {
	case raw == "":
	case raw == lastPage:
		req.Last = true
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Request{}, apperrors.ErrPageNotFound
		}
		req.Page = n
	}
	return req, nil
}

func (p *Pager) size(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return p.defaultSize
	}
	if p.maxSize > 0 && n > p.maxSize {
		return p.maxSize
	}
	return n
}

// Resolve fixes req against total rows. The first page always exists, even
// when empty; any later page past the end is not found.
func (p *Pager) Resolve(req Request, total int64) (*Page, error) {
	numPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	if numPages < 1 {
		numPages = 1
	}

	number := req.Page
	if req.Last {
		number = numPages
	}
	if number > numPages {
		return nil, apperrors.ErrPageNotFound
	}

	return &Page{Count: total, Number: number, Size: req.Size, NumPages: numPages}, nil
}

// Offset is the number of rows before this page.
func (pg *Page) Offset() int {
	return (pg.Number - 1) * pg.Size
}

// HasNext reports whether a later page exists.
func (pg *Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

// HasPrevious reports whether an earlier page exists.
func (pg *Page) HasPrevious() bool {
	return pg.Number > 1
}

// NextURL returns the link to the following page, or nil on the last page.
func (pg *Page) NextURL(base *url.URL) *string {
	if !pg.HasNext() {
		return nil
	}
	link := pageURL(base, pg.Number+1)
	return &link
}

// PreviousURL returns the link to the preceding page, or nil on the first page.
func (pg *Page) PreviousURL(base *url.URL) *string {
	if !pg.HasPrevious() {
		return nil
	}
	link := pageURL(base, pg.Number-1)
	return &link
}

// pageURL rewrites base to point at page n, keeping every other parameter.
// The first page is addressed without a page parameter.
func pageURL(base *url.URL, n int) string {
	u := *base
	q := u.Query()
	if n == 1 {
		q.Del(ParamPage)
	} else {
		q.Set(ParamPage, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
