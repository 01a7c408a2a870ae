package trxview

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids[T Record](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.TransactionID())
	}
	return out
}

func scenario() []rec {
	return []rec{
		{id: "T1", status: "pending", created: day(2024, 1, 1)},
		{id: "T2", status: "pending", proof: "url", created: day(2024, 1, 2)},
		{id: "T3", status: "success", created: day(2024, 1, 3)},
	}
}

func TestApply_Scenario(t *testing.T) {
	items := scenario()

	all := Apply(items, Filter{Status: StatusAll, Sort: SortNewest}, 1, 10)
	assert.Equal(t, []string{"T3", "T2", "T1"}, ids(all.Items))

	waiting := Apply(items, Filter{Status: "waiting_confirmation"}, 1, 10)
	assert.Equal(t, []string{"T2"}, ids(waiting.Items))

	pending := Apply(items, Filter{Status: "pending"}, 1, 10)
	assert.Equal(t, []string{"T1"}, ids(pending.Items))

	oldest := Apply(items, Filter{Sort: SortOldest}, 1, 10)
	assert.Equal(t, []string{"T1", "T2", "T3"}, ids(oldest.Items))
}

func randomRecords(n int, seed int64) []rec {
	r := rand.New(rand.NewSource(seed))
	statuses := []string{"pending", "success", "rejected", "cancelled"}
	base := day(2024, 3, 1)

	out := make([]rec, n)
	for i := range out {
		out[i] = rec{
			id:      fmt.Sprintf("trx-%03d-%c", i, 'a'+rune(r.Intn(26))),
			status:  statuses[r.Intn(len(statuses))],
			created: base.Add(time.Duration(r.Intn(60*24)) * time.Minute * 30),
		}
		if r.Intn(2) == 0 {
			out[i].proof = "https://cdn.example.com/" + out[i].id
		}
	}
	return out
}

func TestApply_WaitingConfirmationOnlyPendingWithProof(t *testing.T) {
	items := randomRecords(200, 1)
	res := Apply(items, Filter{Status: "waiting_confirmation"}, 1, len(items))

	require.NotEmpty(t, res.Items)
	for _, it := range res.Items {
		assert.Equal(t, "pending", it.status)
		assert.NotEmpty(t, it.proof)
	}

	for _, it := range Apply(items, Filter{Status: "pending"}, 1, len(items)).Items {
		assert.Empty(t, it.proof)
	}
}

func TestFiltered_Idempotent(t *testing.T) {
	items := randomRecords(150, 2)
	start := day(2024, 3, 5)
	f := Filter{Status: "success", Search: "A", StartDate: &start, Sort: SortOldest}

	first := Filtered(items, f)
	second := Filtered(items, f)
	assert.Equal(t, first, second)

	// filtering the output again changes nothing
	assert.Equal(t, first, Filtered(first, f))
}

func TestApply_PagesCoverFilteredSetOnce(t *testing.T) {
	items := randomRecords(97, 3)

	for _, pageSize := range []int{AdminPageSize, UserPageSize, 7} {
		f := Filter{Status: StatusAll}
		full := Filtered(items, f)
		first := Apply(items, f, 1, pageSize)

		var joined []rec
		for page := 1; page <= first.TotalPages; page++ {
			res := Apply(items, f, page, pageSize)
			assert.LessOrEqual(t, len(res.Items), pageSize)
			joined = append(joined, res.Items...)
		}

		assert.Equal(t, full, joined, "page size %d", pageSize)
		assert.Equal(t, (len(full)+pageSize-1)/pageSize, first.TotalPages)
	}
}

func TestApply_DateBoundaries(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, loc)

	items := []rec{
		{id: "last-ms", status: "success", created: time.Date(2024, 1, 10, 23, 59, 59, 999_000_000, loc)},
		{id: "next-day", status: "success", created: time.Date(2024, 1, 11, 0, 0, 0, 0, loc)},
		{id: "first-ms", status: "success", created: time.Date(2024, 1, 5, 0, 0, 0, 0, loc)},
		{id: "day-before", status: "success", created: time.Date(2024, 1, 4, 23, 59, 59, 999_000_000, loc)},
	}

	res := Apply(items, Filter{StartDate: &start, EndDate: &end}, 1, 10)
	assert.ElementsMatch(t, []string{"last-ms", "first-ms"}, ids(res.Items))

	// open start
	res = Apply(items, Filter{EndDate: &end}, 1, 10)
	assert.ElementsMatch(t, []string{"last-ms", "first-ms", "day-before"}, ids(res.Items))
}

func TestApply_SearchIsCaseInsensitiveOnID(t *testing.T) {
	items := []rec{
		{id: "9F2C-ABC", status: "pending", created: day(2024, 1, 1)},
		{id: "1111-def", status: "pending", created: day(2024, 1, 2)},
	}

	res := Apply(items, Filter{Search: "abc"}, 1, 10)
	assert.Equal(t, []string{"9F2C-ABC"}, ids(res.Items))
}

func TestApply_Empty(t *testing.T) {
	res := Apply([]rec{}, DefaultFilter(), 1, AdminPageSize)
	assert.Equal(t, 0, res.TotalMatching)
	assert.Equal(t, 0, res.TotalPages)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.True(t, res.Empty())

	res = Apply(scenario(), DefaultFilter(), 5, 2)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.TotalPages)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := scenario()
	before := append([]rec(nil), items...)

	Apply(items, Filter{Sort: SortNewest}, 1, 2)
	assert.Equal(t, before, items)
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, MessageNoTransactions, DefaultFilter().EmptyMessage())
	assert.Equal(t, MessageNoMatch, Filter{Search: "x"}.EmptyMessage())
	assert.Equal(t, MessageNoMatch, Filter{Status: "success"}.EmptyMessage())

	assert.Equal(t, "", EmptyState(3, Filter{Search: "x"}))
	assert.Equal(t, MessageNoTransactions, EmptyState(0, Filter{}))
	assert.Equal(t, MessageNoMatch, EmptyState(0, Filter{Sort: SortOldest, Status: "rejected"}))
}

func TestFilter_ActiveIgnoresSort(t *testing.T) {
	assert.False(t, Filter{}.Active())
	assert.False(t, Filter{Sort: SortOldest}.Active())
	assert.True(t, Filter{Status: "cancelled"}.Active())
}
