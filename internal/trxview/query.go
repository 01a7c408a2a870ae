package trxview

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// URL query parameter names of a list view.
const (
	ParamStatus    = "status"
	ParamSearch    = "search"
	ParamSortBy    = "sortBy"
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamPage      = "page"
)

// DateLayout is the calendar-day format used in query strings.
const DateLayout = "2006-01-02"

// Query encodes f as URL parameters. Default values are left out so a
// default filter encodes to an empty query.
func (f Filter) Query() url.Values {
	f = f.normalized()
	v := url.Values{}

	if f.Status != StatusAll {
		v.Set(ParamStatus, f.Status)
	}
	if f.Search != "" {
		v.Set(ParamSearch, f.Search)
	}
	if f.Sort != SortNewest {
		v.Set(ParamSortBy, string(f.Sort))
	}
	if f.StartDate != nil {
		v.Set(ParamStartDate, f.StartDate.Format(DateLayout))
	}
	if f.EndDate != nil {
		v.Set(ParamEndDate, f.EndDate.Format(DateLayout))
	}

	return v
}

// ParseQuery reads a filter from URL parameters. Unknown or malformed values
// fall back to their defaults. Dates are read as calendar days in loc.
func ParseQuery(v url.Values, loc *time.Location) Filter {
	if loc == nil {
		loc = time.Local
	}
	f := DefaultFilter()

	if s := v.Get(ParamStatus); validStatus(s) {
		f.Status = s
	}
	f.Search = strings.TrimSpace(v.Get(ParamSearch))
	if Sort(v.Get(ParamSortBy)) == SortOldest {
		f.Sort = SortOldest
	}
	f.StartDate = parseDay(v.Get(ParamStartDate), loc)
	f.EndDate = parseDay(v.Get(ParamEndDate), loc)

	return f
}

// ParsePage reads the page parameter, defaulting to 1.
func ParsePage(v url.Values) int {
	page, err := strconv.Atoi(v.Get(ParamPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func validStatus(s string) bool {
	if s == StatusAll {
		return true
	}
	for _, st := range Statuses() {
		if string(st) == s {
			return true
		}
	}
	return false
}

func parseDay(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil
	}
	return &t
}
