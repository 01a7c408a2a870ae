package trxview

import (
	"math"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuery_DefaultsAreOmitted(t *testing.T) {
	assert.Empty(t, DefaultFilter().Query())
	assert.Empty(t, Filter{}.Query())
}

func TestQuery_RoundTrip(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, loc)

	filters := []Filter{
		DefaultFilter(),
		{Status: "waiting_confirmation"},
		{Search: "abc-123", Sort: SortOldest},
		{Status: "rejected", StartDate: &start},
		{EndDate: &end, Sort: SortOldest},
		{Status: "success", Search: "x", StartDate: &start, EndDate: &end},
	}

	for _, f := range filters {
		q := f.Query()
		back := ParseQuery(q, loc)
		assert.True(t, f.Equal(back), "query %s", q.Encode())

		// re-encoding the parsed filter gives the same URL
		assert.Equal(t, q.Encode(), back.Query().Encode())
	}
}

func TestQuery_ParamNames(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := Filter{Status: "pending", Search: "q", StartDate: &start, EndDate: &start, Sort: SortOldest}

	q := f.Query()
	assert.Equal(t, "pending", q.Get("status"))
	assert.Equal(t, "q", q.Get("search"))
	assert.Equal(t, "oldest", q.Get("sortBy"))
	assert.Equal(t, "2024-01-02", q.Get("startDate"))
	assert.Equal(t, "2024-01-02", q.Get("endDate"))
}

func TestParseQuery_InvalidFallsBack(t *testing.T) {
	v := url.Values{
		"status":    {"shipped"},
		"sortBy":    {"random"},
		"startDate": {"02/01/2024"},
		"endDate":   {"2024-13-40"},
		"search":    {"  trimmed  "},
	}

	f := ParseQuery(v, time.UTC)
	assert.Equal(t, StatusAll, f.Status)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	assert.Equal(t, "trimmed", f.Search)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(url.Values{}))
	assert.Equal(t, 1, ParsePage(url.Values{"page": {"0"}}))
	assert.Equal(t, 1, ParsePage(url.Values{"page": {"abc"}}))
	assert.Equal(t, 4, ParsePage(url.Values{"page": {"4"}}))
	assert.Equal(t, math.MaxInt, ParsePage(url.Values{"page": {strconv.Itoa(math.MaxInt)}}))
}

func TestApply_HugePageFromQueryIsEmpty(t *testing.T) {
	page := ParsePage(url.Values{"page": {strconv.Itoa(math.MaxInt)}})

	for _, size := range []int{1, UserPageSize, AdminPageSize, math.MaxInt} {
		var res Result[rec]
		assert.NotPanics(t, func() { res = Apply(scenario(), DefaultFilter(), page, size) }, "page size %d", size)
		assert.Empty(t, res.Items)
		assert.Equal(t, 3, res.TotalMatching)
		assert.Equal(t, page, res.Page)
	}
}
