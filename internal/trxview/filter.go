package trxview

import (
	"slices"
	"strings"
	"time"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Page sizes of the two transaction views.
const (
	AdminPageSize = 10
	UserPageSize  = 5
)

// Sort orders a list by creation time.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
)

// Empty-state messages.
const (
	MessageNoTransactions = "Belum ada transaksi"
	MessageNoMatch        = "Tidak ada transaksi yang sesuai dengan filter"
)

// Filter describes the current view of a transaction list. StartDate and
// EndDate are calendar days in their own location; nil leaves that side open.
type Filter struct {
	Status    string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Sort      Sort
}

// DefaultFilter matches everything, newest first.
func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Sort: SortNewest}
}

func (f Filter) normalized() Filter {
	if f.Status == "" {
		f.Status = StatusAll
	}
	if f.Sort != SortOldest {
		f.Sort = SortNewest
	}
	return f
}

// Active reports whether any criterion narrows the list.
func (f Filter) Active() bool {
	f = f.normalized()
	return f.Status != StatusAll || f.Search != "" || f.StartDate != nil || f.EndDate != nil
}

// Equal compares two filters after defaults are applied.
func (f Filter) Equal(o Filter) bool {
	f, o = f.normalized(), o.normalized()
	return f.Status == o.Status &&
		f.Search == o.Search &&
		f.Sort == o.Sort &&
		sameDay(f.StartDate, o.StartDate) &&
		sameDay(f.EndDate, o.EndDate)
}

// EmptyMessage is shown when a view has no rows; it tells "nothing yet"
// apart from "nothing matching".
func (f Filter) EmptyMessage() string {
	if f.Active() {
		return MessageNoMatch
	}
	return MessageNoTransactions
}

// EmptyState returns the message for a view with total matching rows, or ""
// when there is something to show.
func EmptyState(total int, f Filter) string {
	if total > 0 {
		return ""
	}
	return f.EmptyMessage()
}

// Matches applies every active criterion of f to r.
func (f Filter) Matches(r Record) bool {
	f = f.normalized()
	return f.matchSearch(r) && f.matchStatus(r) && f.matchDate(r)
}

func (f Filter) matchSearch(r Record) bool {
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.TransactionID()), strings.ToLower(f.Search))
}

func (f Filter) matchStatus(r Record) bool {
	stored := r.StoredStatus()
	switch f.Status {
	case StatusAll:
		return true
	case string(StatusWaitingConfirmation):
		return stored == storedPending && r.ProofURL() != ""
	case string(StatusPending):
		return stored == storedPending && r.ProofURL() == ""
	default:
		return stored == f.Status
	}
}

func (f Filter) matchDate(r Record) bool {
	created := r.CreatedTime()
	if f.StartDate != nil && created.Before(startOfDay(*f.StartDate)) {
		return false
	}
	// inclusive up to 23:59:59.999 of EndDate
	if f.EndDate != nil && !created.Before(startOfDay(*f.EndDate).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Result is one page of a filtered, sorted list.
type Result[T Record] struct {
	Items         []T
	TotalMatching int
	TotalPages    int
	Page          int
	PageSize      int
}

// Empty reports whether nothing matched.
func (r Result[T]) Empty() bool {
	return r.TotalMatching == 0
}

// Filtered returns the records matching f in f's sort order. The input is
// left untouched.
func Filtered[T Record](items []T, f Filter) []T {
	f = f.normalized()

	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if f.Sort == SortOldest {
			return a.CreatedTime().Compare(b.CreatedTime())
		}
		return b.CreatedTime().Compare(a.CreatedTime())
	})

	return out
}

// Apply filters, sorts and cuts out page (1-based) of pageSize records.
// A page past the end yields no items; resetting the page is the caller's job.
func Apply[T Record](items []T, f Filter, page, pageSize int) Result[T] {
	if pageSize < 1 {
		pageSize = UserPageSize
	}
	if page < 1 {
		page = 1
	}

	matched := Filtered(items, f)
	total := len(matched)

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	result := Result[T]{
		Items:         []T{},
		TotalMatching: total,
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      pageSize,
	}

	// checked before multiplying so a huge page cannot overflow start
	if page > totalPages {
		return result
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = matched[start:end]

	return result
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return startOfDay(*a).Equal(startOfDay(*b))
}
