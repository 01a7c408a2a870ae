package trxview

import (
	"net/url"
	"strconv"
	"time"
)

// ListView is the mutable state of one paginated transaction list. Any
// change to the filter sends the view back to page 1.
type ListView struct {
	filter   Filter
	page     int
	pageSize int
}

func NewListView(pageSize int) *ListView {
	if pageSize < 1 {
		pageSize = UserPageSize
	}
	return &ListView{filter: DefaultFilter(), page: 1, pageSize: pageSize}
}

// ListViewFromQuery restores a view from its URL parameters.
func ListViewFromQuery(v url.Values, loc *time.Location, pageSize int) *ListView {
	lv := NewListView(pageSize)
	lv.filter = ParseQuery(v, loc)
	lv.page = ParsePage(v)
	return lv
}

func (lv *ListView) Filter() Filter { return lv.filter }
func (lv *ListView) Page() int      { return lv.page }
func (lv *ListView) PageSize() int  { return lv.pageSize }

// SetFilter replaces the whole filter.
func (lv *ListView) SetFilter(f Filter) {
	lv.update(func(cur *Filter) { *cur = f.normalized() })
}

func (lv *ListView) SetStatus(status string) {
	lv.update(func(f *Filter) { f.Status = status })
}

func (lv *ListView) SetSearch(search string) {
	lv.update(func(f *Filter) { f.Search = search })
}

func (lv *ListView) SetSort(sort Sort) {
	lv.update(func(f *Filter) { f.Sort = sort })
}

func (lv *ListView) SetDateRange(start, end *time.Time) {
	lv.update(func(f *Filter) {
		f.StartDate = start
		f.EndDate = end
	})
}

// Reset clears every filter field.
func (lv *ListView) Reset() {
	lv.SetFilter(DefaultFilter())
}

func (lv *ListView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	lv.page = page
}

// Query encodes the filter plus the page when it is not the first.
func (lv *ListView) Query() url.Values {
	v := lv.filter.Query()
	if lv.page > 1 {
		v.Set(ParamPage, strconv.Itoa(lv.page))
	}
	return v
}

func (lv *ListView) update(change func(*Filter)) {
	next := lv.filter
	change(&next)
	next = next.normalized()
	if !next.Equal(lv.filter) {
		lv.page = 1
	}
	lv.filter = next
}

// ApplyView runs Apply with the view's filter, page and page size.
func ApplyView[T Record](lv *ListView, items []T) Result[T] {
	return Apply(items, lv.filter, lv.page, lv.pageSize)
}
