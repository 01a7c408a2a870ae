package client

import (
	"context"
	"net/http"
	"net/url"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

type Transactions struct{ c *Client }

func NewTransactions(c *Client) *Transactions { return &Transactions{c: c} }

// Mine lists the caller's transactions. query is a list view's URL query.
func (t *Transactions) Mine(ctx context.Context, query url.Values) (*response.TransactionListResponse, error) {
	return t.list(ctx, "/my-transactions", query)
}

// All lists every transaction (admin only).
func (t *Transactions) All(ctx context.Context, query url.Values) (*response.TransactionListResponse, error) {
	return t.list(ctx, "/admin/transactions", query)
}

func (t *Transactions) list(ctx context.Context, path string, query url.Values) (*response.TransactionListResponse, error) {
	var out response.TransactionListResponse
	if err := t.c.Do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *Transactions) Get(ctx context.Context, id string) (*response.TransactionResponse, error) {
	var out response.TransactionResponse
	if err := t.c.Do(ctx, http.MethodGet, "/transactions/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *Transactions) Create(ctx context.Context, req *request.CreateTransactionRequest) (*response.TransactionResponse, error) {
	var out response.TransactionResponse
	if err := t.c.Do(ctx, http.MethodPost, "/transactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *Transactions) UpdateProof(ctx context.Context, id, proofURL string) (*response.TransactionResponse, error) {
	var out response.TransactionResponse
	req := request.UpdateProofRequest{ProofPaymentURL: proofURL}
	if err := t.c.Do(ctx, http.MethodPut, "/transactions/"+id+"/proof-payment", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *Transactions) UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error) {
	var out response.TransactionResponse
	if err := t.c.Do(ctx, http.MethodPut, "/admin/transactions/"+id+"/status", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
