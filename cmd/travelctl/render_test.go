package main

import (
	"bytes"
	"testing"
	"time"

	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRupiah(t *testing.T) {
	tests := map[int64]string{
		0:          "Rp 0",
		999:        "Rp 999",
		1000:       "Rp 1.000",
		1250000:    "Rp 1.250.000",
		-45000:     "Rp -45.000",
		1000000000: "Rp 1.000.000.000",
	}
	for in, want := range tests {
		assert.Equal(t, want, rupiah(in), "amount %d", in)
	}
}

func TestPickCartItems(t *testing.T) {
	cart := &response.CartResponse{Items: []response.CartItemResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	picked := pickCartItems(cart, []string{"c", "a", "zzz"})
	require.Len(t, picked, 2)
	assert.Equal(t, "a", picked[0].ID)
	assert.Equal(t, "c", picked[1].ID)

	assert.Nil(t, pickCartItems(nil, []string{"a"}))
}

func TestListViewFromFlags(t *testing.T) {
	fs := pflag.NewFlagSet("transactions", pflag.ContinueOnError)
	transactionsFlags(fs)
	require.NoError(t, fs.Parse([]string{"--status", "success", "--start-date", "2024-03-01", "--sort", "oldest", "--page", "2"}))

	lv, err := listView(fs, time.UTC, trxview.UserPageSize)
	require.NoError(t, err)
	assert.Equal(t, 2, lv.Page())

	q := lv.Query()
	assert.Equal(t, "success", q.Get(trxview.ParamStatus))
	assert.Equal(t, "2024-03-01", q.Get(trxview.ParamStartDate))
	assert.Equal(t, "oldest", q.Get(trxview.ParamSortBy))

	bad := pflag.NewFlagSet("transactions", pflag.ContinueOnError)
	transactionsFlags(bad)
	require.NoError(t, bad.Parse([]string{"--end-date", "03/01/2024"}))
	_, err = listView(bad, time.UTC, trxview.UserPageSize)
	assert.EqualError(t, err, "--end-date must be YYYY-MM-DD")
}

func TestRenderTransactions(t *testing.T) {
	t.Run("nothing yet", func(t *testing.T) {
		var buf bytes.Buffer
		renderTransactions(&buf, &response.TransactionListResponse{}, trxview.DefaultFilter(), false)
		assert.Equal(t, trxview.MessageNoTransactions+"\n", buf.String())
	})

	t.Run("filter matches nothing", func(t *testing.T) {
		f := trxview.DefaultFilter()
		f.Search = "zz"
		var buf bytes.Buffer
		renderTransactions(&buf, nil, f, true)
		assert.Equal(t, trxview.MessageNoMatch+"\n", buf.String())
	})

	t.Run("admin sees the fee", func(t *testing.T) {
		proof := "https://cdn.example.com/p.png"
		list := &response.TransactionListResponse{
			PaginatedResponse: *response.NewPaginatedResponse([]response.TransactionResponse{{
				ID:                "trx-1",
				InvoiceID:         "INV-1",
				UserName:          "Budi",
				PaymentMethodName: "BCA",
				TotalAmount:       100000,
				Status:            "pending",
				ProofPaymentURL:   &proof,
				CreatedAt:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			}}, 1, trxview.AdminPageSize, 1),
		}

		var admin, user bytes.Buffer
		renderTransactions(&admin, list, trxview.DefaultFilter(), true)
		renderTransactions(&user, list, trxview.DefaultFilter(), false)

		assert.Contains(t, admin.String(), "FEE")
		assert.Contains(t, admin.String(), rupiah(trxview.ServiceFee(100000)))
		assert.Contains(t, admin.String(), "Menunggu Konfirmasi")
		assert.NotContains(t, user.String(), "FEE")
		assert.Contains(t, user.String(), "page 1/1 (1 transactions)")
	})
}
