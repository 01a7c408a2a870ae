package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"
)

const timeLayout = "2006-01-02 15:04"

func renderActivities(w io.Writer, list *response.PaginatedResponse[response.ActivityResponse]) {
	if list == nil || len(list.Data) == 0 {
		fmt.Fprintln(w, "Tidak ada aktivitas")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCITY\tPRICE\tRATING")
	for _, act := range list.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f (%d)\n",
			act.ID, act.Title, act.City, rupiah(act.EffectivePrice), act.Rating, act.TotalReviews)
	}
	tw.Flush()

	fmt.Fprintf(w, "page %d/%d (%d activities)\n", list.Pagination.Page, max(list.Pagination.TotalPages, 1), list.Pagination.Total)
	nextPage(w, list.Pagination)
}

func renderTransactions(w io.Writer, list *response.TransactionListResponse, filter trxview.Filter, admin bool) {
	total := 0
	if list != nil {
		total = int(list.Pagination.Total)
	}
	if msg := trxview.EmptyState(total, filter); msg != "" {
		fmt.Fprintln(w, msg)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if admin {
		fmt.Fprintln(tw, "ID\tINVOICE\tUSER\tMETHOD\tTOTAL\tFEE\tSTATUS\tCREATED")
	} else {
		fmt.Fprintln(tw, "ID\tINVOICE\tTOTAL\tSTATUS\tCREATED")
	}

	for _, trx := range list.Data {
		label := trxview.DescribeRecord(trx).Label
		created := trx.CreatedAt.Format(timeLayout)
		if admin {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				trx.ID, trx.InvoiceID, trx.UserName, trx.PaymentMethodName,
				rupiah(trx.TotalAmount), rupiah(trxview.ServiceFee(trx.TotalAmount)), label, created)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", trx.ID, trx.InvoiceID, rupiah(trx.TotalAmount), label, created)
	}
	tw.Flush()

	fmt.Fprintf(w, "page %d/%d (%d transactions)\n", list.Pagination.Page, list.Pagination.TotalPages, total)
	nextPage(w, list.Pagination)
}

func renderTransaction(w io.Writer, trx *response.TransactionResponse, admin bool) {
	meta := trxview.DescribeRecord(*trx)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", trx.ID)
	fmt.Fprintf(tw, "Invoice\t%s\n", trx.InvoiceID)
	fmt.Fprintf(tw, "Status\t%s\n", meta.Label)
	fmt.Fprintf(tw, "Payment method\t%s\n", trx.PaymentMethodName)
	if admin {
		fmt.Fprintf(tw, "User\t%s\n", trx.UserName)
	}
	fmt.Fprintf(tw, "Created\t%s\n", trx.CreatedAt.Format(timeLayout))
	if trx.ProofPaymentURL != nil {
		fmt.Fprintf(tw, "Proof\t%s\n", *trx.ProofPaymentURL)
	}
	if trx.RejectionReason != nil {
		fmt.Fprintf(tw, "Rejection reason\t%s\n", *trx.RejectionReason)
	}
	tw.Flush()

	if len(trx.Items) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tSUBTOTAL")
		for _, item := range trx.Items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Title, item.Quantity, rupiah(item.Price), rupiah(item.Subtotal))
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\nTotal: %s\n", rupiah(trx.TotalAmount))
	if admin {
		fmt.Fprintf(w, "Service fee: %s\n", rupiah(trx.ServiceFee))
	}
}

// rupiah formats an amount as "Rp 1.250.000".
func nextPage(w io.Writer, m response.PaginationMeta) {
	if m.HasNext() {
		fmt.Fprintf(w, "more with --page %d\n", m.Page+1)
	}
}

func rupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return "Rp " + sign + b.String()
}
