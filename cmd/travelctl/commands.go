package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"travel-booking/internal/checkout"
	"travel-booking/internal/client"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"

	"github.com/spf13/pflag"
)

var errNotLoggedIn = errors.New("not logged in, run: travelctl login")

// ==================== SESSION ====================

func loginFlags(fs *pflag.FlagSet) {
	fs.String("email", "", "account email")
	fs.String("password", "", "account password")
}

func runLogin(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	email, _ := fs.GetString("email")
	password, _ := fs.GetString("password")

	if err := a.store.Login(ctx, &request.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}

	user := a.store.Auth.State().Data.User
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runLogout(ctx context.Context, a *app, _ *pflag.FlagSet) error {
	if !a.session.Active() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func runWhoami(ctx context.Context, a *app, _ *pflag.FlagSet) error {
	if !a.session.Active() {
		return errNotLoggedIn
	}
	if err := a.store.FetchProfile(ctx); err != nil {
		return err
	}

	user := a.store.Auth.State().Data.User
	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nid:   %s\n", user.Name, user.Email, user.Role, user.ID)
	return nil
}

// ==================== CATALOG ====================

func activitiesFlags(fs *pflag.FlagSet) {
	fs.String("search", "", "match title or city")
	fs.String("category", "", "category id")
	fs.Int("page", 1, "page number")
	fs.Int("per-page", 10, "rows per page")
}

func runActivities(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	q := client.ActivityQuery{}
	q.Search, _ = fs.GetString("search")
	q.CategoryID, _ = fs.GetString("category")
	q.Page, _ = fs.GetInt("page")
	q.PerPage, _ = fs.GetInt("per-page")

	if err := a.store.FetchActivities(ctx, q); err != nil {
		return err
	}

	renderActivities(a.out, a.store.Activities.State().Data.List)
	return nil
}

// ==================== TRANSACTIONS ====================

func transactionsFlags(fs *pflag.FlagSet) {
	fs.String("status", trxview.StatusAll, "all, pending, waiting_confirmation, success, rejected or cancelled")
	fs.String("search", "", "match transaction id")
	fs.String("start-date", "", "first day, YYYY-MM-DD")
	fs.String("end-date", "", "last day, YYYY-MM-DD")
	fs.String("sort", string(trxview.SortNewest), "newest or oldest")
	fs.Int("page", 1, "page number")
	fs.Bool("admin", false, "list every user's transactions")
}

// listView turns the flags into a list view, the same state the web pages
// keep in their URL.
func listView(fs *pflag.FlagSet, loc *time.Location, pageSize int) (*trxview.ListView, error) {
	status, _ := fs.GetString("status")
	search, _ := fs.GetString("search")
	sort, _ := fs.GetString("sort")
	page, _ := fs.GetInt("page")

	start, err := dayFlag(fs, "start-date", loc)
	if err != nil {
		return nil, err
	}
	end, err := dayFlag(fs, "end-date", loc)
	if err != nil {
		return nil, err
	}

	lv := trxview.NewListView(pageSize)
	lv.SetFilter(trxview.Filter{
		Status:    status,
		Search:    search,
		StartDate: start,
		EndDate:   end,
		Sort:      trxview.Sort(sort),
	})
	lv.SetPage(page)
	return lv, nil
}

func dayFlag(fs *pflag.FlagSet, name string, loc *time.Location) (*time.Time, error) {
	raw, _ := fs.GetString(name)
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(trxview.DateLayout, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD", name)
	}
	return &day, nil
}

func runTransactions(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	if !a.session.Active() {
		return errNotLoggedIn
	}

	admin, _ := fs.GetBool("admin")
	pageSize := trxview.UserPageSize
	if admin {
		pageSize = trxview.AdminPageSize
	}

	lv, err := listView(fs, a.loc, pageSize)
	if err != nil {
		return err
	}

	var list *response.TransactionListResponse
	if admin {
		if err := a.store.FetchAllTransactions(ctx, lv.Query()); err != nil {
			return err
		}
		list = a.store.Admin.State().Data.Transactions
	} else {
		if err := a.store.FetchMyTransactions(ctx, lv.Query()); err != nil {
			return err
		}
		list = a.store.Transaction.State().Data.List
	}

	renderTransactions(a.out, list, lv.Filter(), admin)
	return nil
}

func runTransaction(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	id, err := arg(fs, 0, "transaction id")
	if err != nil {
		return err
	}
	if err := a.store.FetchTransaction(ctx, id); err != nil {
		return err
	}

	renderTransaction(a.out, a.store.Transaction.State().Data.Current, a.session.IsAdmin())
	return nil
}

// ==================== CHECKOUT ====================

func checkoutFlags(fs *pflag.FlagSet) {
	fs.StringSlice("cart", nil, "cart item ids to book")
	fs.String("payment-method", "", "payment method id")
	fs.String("name", "", "customer name")
	fs.String("email", "", "customer email")
	fs.String("phone", "", "customer phone")
}

func runCheckout(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	if !a.session.Active() {
		return errNotLoggedIn
	}

	ids, _ := fs.GetStringSlice("cart")
	form := checkout.Form{}
	form.PaymentMethodID, _ = fs.GetString("payment-method")
	form.Customer.Name, _ = fs.GetString("name")
	form.Customer.Email, _ = fs.GetString("email")
	form.Customer.Phone, _ = fs.GetString("phone")

	if err := a.store.FetchCart(ctx); err != nil {
		return err
	}
	selected := pickCartItems(a.store.Cart.State().Data, ids)

	flow := checkout.NewFlow(a.api.Transactions, a.api.Uploads, a.log)
	if err := flow.Select(selected); err != nil {
		return err
	}
	if err := flow.Begin(); err != nil {
		if errors.Is(err, checkout.ErrEmptySelection) {
			return fmt.Errorf("none of the given ids are in your cart")
		}
		return err
	}
	if err := flow.Submit(ctx, form); err != nil {
		return err
	}

	created := flow.State().(checkout.TransactionCreated)
	fmt.Fprintf(a.out, "Transaction %s created (%s)\n", created.Transaction.ID, created.Transaction.InvoiceID)
	renderTransaction(a.out, &created.Transaction, false)
	return nil
}

func pickCartItems(cart *response.CartResponse, ids []string) []response.CartItemResponse {
	if cart == nil {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var picked []response.CartItemResponse
	for _, item := range cart.Items {
		if want[item.ID] {
			picked = append(picked, item)
		}
	}
	return picked
}

func runUploadProof(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	id, err := arg(fs, 0, "transaction id")
	if err != nil {
		return err
	}
	path, err := arg(fs, 1, "file")
	if err != nil {
		return err
	}

	trx, err := a.api.Transactions.Get(ctx, id)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	flow := checkout.Resume(*trx, a.api.Transactions, a.api.Uploads, a.log)
	if err := flow.UploadProof(ctx, filepath.Base(path), file); err != nil {
		return err
	}

	uploaded := flow.State().(checkout.ProofUploaded)
	fmt.Fprintln(a.out, "Proof of payment uploaded")
	renderTransaction(a.out, &uploaded.Transaction, false)
	return nil
}

// ==================== ADMIN DECISIONS ====================

func rejectFlags(fs *pflag.FlagSet) {
	fs.String("reason", "", "why the payment is rejected")
}

func runApprove(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	return decide(ctx, a, fs, checkout.Approve())
}

func runReject(ctx context.Context, a *app, fs *pflag.FlagSet) error {
	reason, _ := fs.GetString("reason")
	return decide(ctx, a, fs, checkout.Reject(reason))
}

func decide(ctx context.Context, a *app, fs *pflag.FlagSet, decision checkout.Decision) error {
	id, err := arg(fs, 0, "transaction id")
	if err != nil {
		return err
	}
	// fail before any request
	if err := decision.Validate(); err != nil {
		return err
	}

	if err := a.store.FetchAdminTransaction(ctx, id); err != nil {
		return err
	}
	current := a.store.Admin.State().Data.Selected

	flow := checkout.Resume(*current, a.api.Transactions, a.api.Uploads, a.log)
	if err := flow.Decide(ctx, a.api.Transactions, decision); err != nil {
		return err
	}

	decided := flow.State().(checkout.Decided)
	fmt.Fprintf(a.out, "Transaction %s: %s\n", decided.Transaction.ID, trxview.DescribeRecord(decided.Transaction).Label)
	return nil
}

func arg(fs *pflag.FlagSet, i int, name string) (string, error) {
	if fs.NArg() <= i {
		return "", fmt.Errorf("missing %s", name)
	}
	return fs.Arg(i), nil
}
