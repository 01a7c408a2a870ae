package store

import (
	"context"
	"net/url"

	"travel-booking/internal/client"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AuthState struct {
	User *response.UserResponse
}

type ActivitiesState struct {
	List     *response.PaginatedResponse[response.ActivityResponse]
	Selected *response.ActivityResponse
}

type AdminState struct {
	Users        *response.PaginatedResponse[response.UserResponse]
	Transactions *response.TransactionListResponse
	Selected     *response.TransactionResponse
}

type TransactionState struct {
	List           *response.TransactionListResponse
	Current        *response.TransactionResponse
	PaymentMethods []response.PaymentMethodResponse
}

type ReviewsState struct {
	ForActivity *response.PaginatedResponse[response.ReviewResponse]
	Mine        []response.ReviewResponse
}

// Store is the single client-side state container. Slices own disjoint data.
type Store struct {
	Auth        *Slice[AuthState]
	Activities  *Slice[ActivitiesState]
	Categories  *Slice[[]response.CategoryResponse]
	Banners     *Slice[[]response.BannerResponse]
	Promos      *Slice[[]response.PromoResponse]
	Admin       *Slice[AdminState]
	Cart        *Slice[*response.CartResponse]
	Wishlist    *Slice[[]response.WishlistItemResponse]
	Transaction *Slice[TransactionState]
	Reviews     *Slice[ReviewsState]

	api     *client.Services
	session *client.Session
	stop    func()
}

// New builds the store over api and follows session: ending it clears every
// user-owned slice, beginning it records the user.
func New(api *client.Services, session *client.Session, log *zap.Logger) *Store {
	log = log.With(zap.String("component", "store"))

	s := &Store{
		Auth:        NewSlice("auth", AuthState{}, log),
		Activities:  NewSlice("activities", ActivitiesState{}, log),
		Categories:  NewSlice[[]response.CategoryResponse]("categories", nil, log),
		Banners:     NewSlice[[]response.BannerResponse]("banners", nil, log),
		Promos:      NewSlice[[]response.PromoResponse]("promos", nil, log),
		Admin:       NewSlice("admin", AdminState{}, log),
		Cart:        NewSlice[*response.CartResponse]("cart", nil, log),
		Wishlist:    NewSlice[[]response.WishlistItemResponse]("wishlist", nil, log),
		Transaction: NewSlice("transaction", TransactionState{}, log),
		Reviews:     NewSlice("reviews", ReviewsState{}, log),
		api:         api,
		session:     session,
	}

	if id, ok := session.Identity(); ok {
		user := id.User
		s.Auth.Set(func(AuthState) AuthState { return AuthState{User: &user} })
	}

	s.stop = session.Subscribe(func(id client.Identity, active bool) {
		if active {
			user := id.User
			s.Auth.Set(func(AuthState) AuthState { return AuthState{User: &user} })
			return
		}
		s.resetUserState()
	})

	return s
}

// Close detaches the store from the session.
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

func (s *Store) resetUserState() {
	s.Auth.Reset()
	s.Cart.Reset()
	s.Wishlist.Reset()
	s.Transaction.Reset()
	s.Admin.Reset()
}

// ==================== AUTH ====================

func (s *Store) Login(ctx context.Context, req *request.LoginRequest) error {
	return s.Auth.Run(ctx, "login", func(ctx context.Context) (Reducer[AuthState], error) {
		out, err := s.api.Auth.Login(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(AuthState) AuthState { return AuthState{User: &out.User} }, nil
	})
}

func (s *Store) Register(ctx context.Context, req *request.RegisterRequest) error {
	return s.Auth.Run(ctx, "register", func(ctx context.Context) (Reducer[AuthState], error) {
		out, err := s.api.Auth.Register(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(AuthState) AuthState { return AuthState{User: &out.User} }, nil
	})
}

// Logout ends the session; the session subscription clears the slices.
func (s *Store) Logout(ctx context.Context) error {
	return s.api.Auth.Logout(ctx)
}

func (s *Store) FetchProfile(ctx context.Context) error {
	return s.Auth.Run(ctx, "profile", func(ctx context.Context) (Reducer[AuthState], error) {
		user, err := s.api.Users.Profile(ctx)
		if err != nil {
			return nil, err
		}
		return func(AuthState) AuthState { return AuthState{User: user} }, nil
	})
}

func (s *Store) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) error {
	return s.Auth.Run(ctx, "profile", func(ctx context.Context) (Reducer[AuthState], error) {
		user, err := s.api.Users.UpdateProfile(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(AuthState) AuthState { return AuthState{User: user} }, nil
	})
}

// ==================== CATALOG ====================

func (s *Store) FetchActivities(ctx context.Context, q client.ActivityQuery) error {
	return s.Activities.Run(ctx, "list", func(ctx context.Context) (Reducer[ActivitiesState], error) {
		list, err := s.api.Activities.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return func(st ActivitiesState) ActivitiesState { st.List = list; return st }, nil
	})
}

func (s *Store) FetchActivity(ctx context.Context, id string) error {
	return s.Activities.Run(ctx, "detail", func(ctx context.Context) (Reducer[ActivitiesState], error) {
		activity, err := s.api.Activities.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(st ActivitiesState) ActivitiesState { st.Selected = activity; return st }, nil
	})
}

func (s *Store) CreateActivity(ctx context.Context, req *request.ActivityRequest) error {
	return s.Activities.Run(ctx, "save", func(ctx context.Context) (Reducer[ActivitiesState], error) {
		activity, err := s.api.Activities.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(st ActivitiesState) ActivitiesState { st.Selected = activity; return st }, nil
	})
}

func (s *Store) UpdateActivity(ctx context.Context, id string, req *request.ActivityRequest) error {
	return s.Activities.Run(ctx, "save", func(ctx context.Context) (Reducer[ActivitiesState], error) {
		activity, err := s.api.Activities.Update(ctx, id, req)
		if err != nil {
			return nil, err
		}
		return func(st ActivitiesState) ActivitiesState {
			st.Selected = activity
			if st.List != nil {
				list := *st.List
				list.Data = replaceByID(st.List.Data, *activity, func(a response.ActivityResponse) string { return a.ID })
				st.List = &list
			}
			return st
		}, nil
	})
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	return s.Activities.Run(ctx, "delete", func(ctx context.Context) (Reducer[ActivitiesState], error) {
		if err := s.api.Activities.Delete(ctx, id); err != nil {
			return nil, err
		}
		return func(st ActivitiesState) ActivitiesState {
			if st.List != nil {
				list := *st.List
				list.Data = removeByID(st.List.Data, id, func(a response.ActivityResponse) string { return a.ID })
				st.List = &list
			}
			if st.Selected != nil && st.Selected.ID == id {
				st.Selected = nil
			}
			return st
		}, nil
	})
}

func (s *Store) FetchCategories(ctx context.Context) error {
	return fetchAll(ctx, s.Categories, s.api.Categories.All)
}

func (s *Store) FetchBanners(ctx context.Context) error {
	return fetchAll(ctx, s.Banners, s.api.Banners.All)
}

func (s *Store) FetchPromos(ctx context.Context) error {
	return fetchAll(ctx, s.Promos, s.api.Promos.All)
}

func (s *Store) CreateCategory(ctx context.Context, req *request.CategoryRequest) error {
	return create(ctx, s.Categories, func(ctx context.Context) (*response.CategoryResponse, error) {
		return s.api.Categories.Create(ctx, req)
	})
}

func (s *Store) UpdateCategory(ctx context.Context, id string, req *request.CategoryRequest) error {
	return update(ctx, s.Categories, func(ctx context.Context) (*response.CategoryResponse, error) {
		return s.api.Categories.Update(ctx, id, req)
	}, func(c response.CategoryResponse) string { return c.ID })
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return remove(ctx, s.Categories, id, s.api.Categories.Delete, func(c response.CategoryResponse) string { return c.ID })
}

func (s *Store) CreateBanner(ctx context.Context, req *request.BannerRequest) error {
	return create(ctx, s.Banners, func(ctx context.Context) (*response.BannerResponse, error) {
		return s.api.Banners.Create(ctx, req)
	})
}

func (s *Store) UpdateBanner(ctx context.Context, id string, req *request.BannerRequest) error {
	return update(ctx, s.Banners, func(ctx context.Context) (*response.BannerResponse, error) {
		return s.api.Banners.Update(ctx, id, req)
	}, func(b response.BannerResponse) string { return b.ID })
}

func (s *Store) DeleteBanner(ctx context.Context, id string) error {
	return remove(ctx, s.Banners, id, s.api.Banners.Delete, func(b response.BannerResponse) string { return b.ID })
}

func (s *Store) CreatePromo(ctx context.Context, req *request.PromoRequest) error {
	return create(ctx, s.Promos, func(ctx context.Context) (*response.PromoResponse, error) {
		return s.api.Promos.Create(ctx, req)
	})
}

func (s *Store) UpdatePromo(ctx context.Context, id string, req *request.PromoRequest) error {
	return update(ctx, s.Promos, func(ctx context.Context) (*response.PromoResponse, error) {
		return s.api.Promos.Update(ctx, id, req)
	}, func(p response.PromoResponse) string { return p.ID })
}

func (s *Store) DeletePromo(ctx context.Context, id string) error {
	return remove(ctx, s.Promos, id, s.api.Promos.Delete, func(p response.PromoResponse) string { return p.ID })
}

// ==================== CART & WISHLIST ====================

func (s *Store) FetchCart(ctx context.Context) error {
	return s.Cart.Run(ctx, "fetch", s.reloadCart)
}

func (s *Store) AddToCart(ctx context.Context, activityID string, quantity int) error {
	return s.Cart.Run(ctx, "fetch", func(ctx context.Context) (Reducer[*response.CartResponse], error) {
		if _, err := s.api.Cart.Add(ctx, activityID, quantity); err != nil {
			return nil, err
		}
		return s.reloadCart(ctx)
	})
}

func (s *Store) UpdateCartQuantity(ctx context.Context, id string, quantity int) error {
	return s.Cart.Run(ctx, "fetch", func(ctx context.Context) (Reducer[*response.CartResponse], error) {
		if _, err := s.api.Cart.UpdateQuantity(ctx, id, quantity); err != nil {
			return nil, err
		}
		return s.reloadCart(ctx)
	})
}

func (s *Store) RemoveFromCart(ctx context.Context, id string) error {
	return s.Cart.Run(ctx, "fetch", func(ctx context.Context) (Reducer[*response.CartResponse], error) {
		if err := s.api.Cart.Remove(ctx, id); err != nil {
			return nil, err
		}
		return s.reloadCart(ctx)
	})
}

// the server recomputes totals, so every cart mutation reloads it
func (s *Store) reloadCart(ctx context.Context) (Reducer[*response.CartResponse], error) {
	cart, err := s.api.Cart.Get(ctx)
	if err != nil {
		return nil, err
	}
	return func(*response.CartResponse) *response.CartResponse { return cart }, nil
}

func (s *Store) FetchWishlist(ctx context.Context) error {
	return fetchAll(ctx, s.Wishlist, s.api.Wishlist.All)
}

func (s *Store) AddToWishlist(ctx context.Context, activityID string) error {
	return s.Wishlist.Run(ctx, "fetch", func(ctx context.Context) (Reducer[[]response.WishlistItemResponse], error) {
		if err := s.api.Wishlist.Add(ctx, activityID); err != nil {
			return nil, err
		}
		items, err := s.api.Wishlist.All(ctx)
		if err != nil {
			return nil, err
		}
		return func([]response.WishlistItemResponse) []response.WishlistItemResponse { return items }, nil
	})
}

func (s *Store) RemoveFromWishlist(ctx context.Context, activityID string) error {
	return s.Wishlist.Run(ctx, "fetch", func(ctx context.Context) (Reducer[[]response.WishlistItemResponse], error) {
		if err := s.api.Wishlist.Remove(ctx, activityID); err != nil {
			return nil, err
		}
		return func(items []response.WishlistItemResponse) []response.WishlistItemResponse {
			return removeByID(items, activityID, func(w response.WishlistItemResponse) string { return w.ActivityID })
		}, nil
	})
}

// ==================== TRANSACTIONS ====================

// FetchMyTransactions loads one page of the caller's list view.
func (s *Store) FetchMyTransactions(ctx context.Context, query url.Values) error {
	return s.Transaction.Run(ctx, "list", func(ctx context.Context) (Reducer[TransactionState], error) {
		list, err := s.api.Transactions.Mine(ctx, query)
		if err != nil {
			return nil, err
		}
		return func(st TransactionState) TransactionState { st.List = list; return st }, nil
	})
}

func (s *Store) FetchTransaction(ctx context.Context, id string) error {
	return s.Transaction.Run(ctx, "detail", func(ctx context.Context) (Reducer[TransactionState], error) {
		trx, err := s.api.Transactions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(st TransactionState) TransactionState { st.Current = trx; return st }, nil
	})
}

func (s *Store) FetchPaymentMethods(ctx context.Context) error {
	return s.Transaction.Run(ctx, "payment_methods", func(ctx context.Context) (Reducer[TransactionState], error) {
		methods, err := s.api.PaymentMethods.All(ctx)
		if err != nil {
			return nil, err
		}
		return func(st TransactionState) TransactionState { st.PaymentMethods = methods; return st }, nil
	})
}

// CreateTransaction books the selected cart lines. The cart slice is not
// touched here; callers refetch it.
func (s *Store) CreateTransaction(ctx context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error) {
	var created *response.TransactionResponse
	err := s.Transaction.Run(ctx, "detail", func(ctx context.Context) (Reducer[TransactionState], error) {
		trx, err := s.api.Transactions.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		created = trx
		return func(st TransactionState) TransactionState { st.Current = trx; return st }, nil
	})
	return created, err
}

func (s *Store) UpdateProof(ctx context.Context, id, proofURL string) (*response.TransactionResponse, error) {
	var updated *response.TransactionResponse
	err := s.Transaction.Run(ctx, "detail", func(ctx context.Context) (Reducer[TransactionState], error) {
		trx, err := s.api.Transactions.UpdateProof(ctx, id, proofURL)
		if err != nil {
			return nil, err
		}
		updated = trx
		return func(st TransactionState) TransactionState {
			st.Current = trx
			if st.List != nil {
				list := *st.List
				list.Data = replaceByID(st.List.Data, *trx, transactionID)
				st.List = &list
			}
			return st
		}, nil
	})
	return updated, err
}

// ==================== ADMIN ====================

func (s *Store) FetchAllTransactions(ctx context.Context, query url.Values) error {
	return s.Admin.Run(ctx, "transactions", func(ctx context.Context) (Reducer[AdminState], error) {
		list, err := s.api.Transactions.All(ctx, query)
		if err != nil {
			return nil, err
		}
		return func(st AdminState) AdminState { st.Transactions = list; return st }, nil
	})
}

func (s *Store) FetchAdminTransaction(ctx context.Context, id string) error {
	return s.Admin.Run(ctx, "transaction", func(ctx context.Context) (Reducer[AdminState], error) {
		trx, err := s.api.Transactions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return func(st AdminState) AdminState { st.Selected = trx; return st }, nil
	})
}

func (s *Store) UpdateTransactionStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error) {
	var updated *response.TransactionResponse
	err := s.Admin.Run(ctx, "transaction", func(ctx context.Context) (Reducer[AdminState], error) {
		trx, err := s.api.Transactions.UpdateStatus(ctx, id, req)
		if err != nil {
			return nil, err
		}
		updated = trx
		return func(st AdminState) AdminState {
			st.Selected = trx
			if st.Transactions != nil {
				transactions := *st.Transactions
				transactions.Data = replaceByID(st.Transactions.Data, *trx, transactionID)
				st.Transactions = &transactions
			}
			return st
		}, nil
	})
	return updated, err
}

func (s *Store) FetchUsers(ctx context.Context, page, perPage int) error {
	return s.Admin.Run(ctx, "users", func(ctx context.Context) (Reducer[AdminState], error) {
		users, err := s.api.Users.All(ctx, page, perPage)
		if err != nil {
			return nil, err
		}
		return func(st AdminState) AdminState { st.Users = users; return st }, nil
	})
}

func (s *Store) UpdateUserRole(ctx context.Context, id, role string) error {
	return s.Admin.Run(ctx, "role", func(ctx context.Context) (Reducer[AdminState], error) {
		user, err := s.api.Users.UpdateRole(ctx, id, role)
		if err != nil {
			return nil, err
		}
		return func(st AdminState) AdminState {
			if st.Users != nil {
				users := *st.Users
				users.Data = replaceByID(st.Users.Data, *user, func(u response.UserResponse) string { return u.ID })
				st.Users = &users
			}
			return st
		}, nil
	})
}

// ==================== REVIEWS ====================

func (s *Store) FetchActivityReviews(ctx context.Context, activityID string, page, perPage int) error {
	return s.Reviews.Run(ctx, "activity", func(ctx context.Context) (Reducer[ReviewsState], error) {
		reviews, err := s.api.Reviews.ForActivity(ctx, activityID, page, perPage)
		if err != nil {
			return nil, err
		}
		return func(st ReviewsState) ReviewsState { st.ForActivity = reviews; return st }, nil
	})
}

func (s *Store) FetchMyReviews(ctx context.Context) error {
	return s.Reviews.Run(ctx, "mine", func(ctx context.Context) (Reducer[ReviewsState], error) {
		reviews, err := s.api.Reviews.Mine(ctx)
		if err != nil {
			return nil, err
		}
		return func(st ReviewsState) ReviewsState { st.Mine = reviews; return st }, nil
	})
}

func (s *Store) CreateReview(ctx context.Context, req *request.CreateReviewRequest) error {
	return s.Reviews.Run(ctx, "mine", func(ctx context.Context) (Reducer[ReviewsState], error) {
		review, err := s.api.Reviews.Create(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(st ReviewsState) ReviewsState {
			st.Mine = append([]response.ReviewResponse{*review}, st.Mine...)
			return st
		}, nil
	})
}

func (s *Store) UpdateReview(ctx context.Context, id string, req *request.UpdateReviewRequest) error {
	return s.Reviews.Run(ctx, "mine", func(ctx context.Context) (Reducer[ReviewsState], error) {
		review, err := s.api.Reviews.Update(ctx, id, req)
		if err != nil {
			return nil, err
		}
		return func(st ReviewsState) ReviewsState {
			st.Mine = replaceByID(st.Mine, *review, reviewID)
			return st
		}, nil
	})
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	return s.Reviews.Run(ctx, "mine", func(ctx context.Context) (Reducer[ReviewsState], error) {
		if err := s.api.Reviews.Delete(ctx, id); err != nil {
			return nil, err
		}
		return func(st ReviewsState) ReviewsState {
			st.Mine = removeByID(st.Mine, id, reviewID)
			if st.ForActivity != nil {
				forActivity := *st.ForActivity
				forActivity.Data = removeByID(st.ForActivity.Data, id, reviewID)
				st.ForActivity = &forActivity
			}
			return st
		}, nil
	})
}

// ==================== HELPERS ====================

func transactionID(t response.TransactionResponse) string { return t.ID }
func reviewID(r response.ReviewResponse) string           { return r.ID }

func fetchAll[T any](ctx context.Context, s *Slice[[]T], list func(context.Context) ([]T, error)) error {
	return s.Run(ctx, "fetch", func(ctx context.Context) (Reducer[[]T], error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return func([]T) []T { return items }, nil
	})
}

func create[T any](ctx context.Context, s *Slice[[]T], call func(context.Context) (*T, error)) error {
	return s.Run(ctx, "save", func(ctx context.Context) (Reducer[[]T], error) {
		item, err := call(ctx)
		if err != nil {
			return nil, err
		}
		return func(items []T) []T { return append(items, *item) }, nil
	})
}

func update[T any](ctx context.Context, s *Slice[[]T], call func(context.Context) (*T, error), id func(T) string) error {
	return s.Run(ctx, "save", func(ctx context.Context) (Reducer[[]T], error) {
		item, err := call(ctx)
		if err != nil {
			return nil, err
		}
		return func(items []T) []T { return replaceByID(items, *item, id) }, nil
	})
}

func remove[T any](ctx context.Context, s *Slice[[]T], target string, call func(context.Context, string) error, id func(T) string) error {
	return s.Run(ctx, "delete", func(ctx context.Context) (Reducer[[]T], error) {
		if err := call(ctx, target); err != nil {
			return nil, err
		}
		return func(items []T) []T { return removeByID(items, target, id) }, nil
	})
}

// replaceByID returns a copy of items with the element matching item's id swapped.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
		}
	}
	return out
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}
