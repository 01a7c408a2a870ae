package client

import (
	"context"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

type Reviews struct{ c *Client }

func NewReviews(c *Client) *Reviews { return &Reviews{c: c} }

func (r *Reviews) ForActivity(ctx context.Context, activityID string, page, perPage int) (*response.PaginatedResponse[response.ReviewResponse], error) {
	var out response.PaginatedResponse[response.ReviewResponse]
	if err := r.c.Do(ctx, http.MethodGet, "/activities/"+activityID+"/reviews", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reviews) Mine(ctx context.Context) ([]response.ReviewResponse, error) {
	var out []response.ReviewResponse
	if err := r.c.Do(ctx, http.MethodGet, "/reviews", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reviews) Create(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	var out response.ReviewResponse
	if err := r.c.Do(ctx, http.MethodPost, "/reviews", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reviews) Update(ctx context.Context, id string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	var out response.ReviewResponse
	if err := r.c.Do(ctx, http.MethodPut, "/reviews/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Reviews) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, "/reviews/"+id, nil, nil, nil)
}
