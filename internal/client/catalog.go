package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

// resource is the read/admin-write shape shared by categories, banners and promos.
type resource[T any, R any] struct {
	c    *Client
	path string
}

func (r resource[T, R]) All(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.Do(ctx, http.MethodGet, r.path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T, R]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodGet, r.path+"/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T, R]) Create(ctx context.Context, req *R) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPost, "/admin"+r.path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T, R]) Update(ctx context.Context, id string, req *R) (*T, error) {
	var out T
	if err := r.c.Do(ctx, http.MethodPut, "/admin"+r.path+"/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T, R]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, "/admin"+r.path+"/"+id, nil, nil, nil)
}

type Categories struct {
	resource[response.CategoryResponse, request.CategoryRequest]
}

func NewCategories(c *Client) *Categories {
	return &Categories{resource[response.CategoryResponse, request.CategoryRequest]{c: c, path: "/categories"}}
}

type Banners struct {
	resource[response.BannerResponse, request.BannerRequest]
}

func NewBanners(c *Client) *Banners {
	return &Banners{resource[response.BannerResponse, request.BannerRequest]{c: c, path: "/banners"}}
}

type Promos struct {
	resource[response.PromoResponse, request.PromoRequest]
}

func NewPromos(c *Client) *Promos {
	return &Promos{resource[response.PromoResponse, request.PromoRequest]{c: c, path: "/promos"}}
}

// Activities lists are paginated server-side, so All is replaced by List.
type Activities struct {
	c *Client
}

func NewActivities(c *Client) *Activities { return &Activities{c: c} }

// ActivityQuery narrows an activity list. Zero values are left out.
type ActivityQuery struct {
	CategoryID string
	Search     string
	Page       int
	PerPage    int
}

func (q ActivityQuery) values() url.Values {
	v := pageQuery(q.Page, q.PerPage)
	if q.CategoryID != "" {
		v.Set("category_id", q.CategoryID)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (a *Activities) List(ctx context.Context, q ActivityQuery) (*response.PaginatedResponse[response.ActivityResponse], error) {
	var out response.PaginatedResponse[response.ActivityResponse]
	if err := a.c.Do(ctx, http.MethodGet, "/activities", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Activities) Get(ctx context.Context, id string) (*response.ActivityResponse, error) {
	return resource[response.ActivityResponse, request.ActivityRequest]{c: a.c, path: "/activities"}.Get(ctx, id)
}

func (a *Activities) Create(ctx context.Context, req *request.ActivityRequest) (*response.ActivityResponse, error) {
	return resource[response.ActivityResponse, request.ActivityRequest]{c: a.c, path: "/activities"}.Create(ctx, req)
}

func (a *Activities) Update(ctx context.Context, id string, req *request.ActivityRequest) (*response.ActivityResponse, error) {
	return resource[response.ActivityResponse, request.ActivityRequest]{c: a.c, path: "/activities"}.Update(ctx, id, req)
}

func (a *Activities) Delete(ctx context.Context, id string) error {
	return resource[response.ActivityResponse, request.ActivityRequest]{c: a.c, path: "/activities"}.Delete(ctx, id)
}

type PaymentMethods struct{ c *Client }

func NewPaymentMethods(c *Client) *PaymentMethods { return &PaymentMethods{c: c} }

func (p *PaymentMethods) All(ctx context.Context) ([]response.PaymentMethodResponse, error) {
	var out []response.PaymentMethodResponse
	if err := p.c.Do(ctx, http.MethodGet, "/payment-methods", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageQuery(page, perPage int) url.Values {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
	return v
}
