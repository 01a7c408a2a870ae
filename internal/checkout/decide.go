package checkout

import (
	"context"
	"fmt"
	"strings"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"
)

// Decider is the admin status update of the transaction service.
type Decider interface {
	UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error)
}

// Decision is either Approve() or Reject(reason).
type Decision struct {
	status string
	reason string
}

func Approve() Decision {
	return Decision{status: string(trxview.StatusSuccess)}
}

func Reject(reason string) Decision {
	return Decision{status: string(trxview.StatusRejected), reason: strings.TrimSpace(reason)}
}

func (d Decision) Status() string { return d.status }
func (d Decision) Reason() string { return d.reason }

// Validate fails for a rejection without a reason.
func (d Decision) Validate() error {
	switch d.status {
	case string(trxview.StatusSuccess):
		return nil
	case string(trxview.StatusRejected):
		if d.reason == "" {
			return ErrRejectionReasonRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown decision %q", ErrIllegalTransition, d.status)
	}
}

// Decide approves or rejects trx. Nothing is sent unless trx is waiting for
// confirmation and the decision is valid.
func Decide(ctx context.Context, d Decider, trx response.TransactionResponse, decision Decision) (*response.TransactionResponse, error) {
	if err := decision.Validate(); err != nil {
		return nil, err
	}
	if status := trxview.DeriveRecord(trx); status != trxview.StatusWaitingConfirmation {
		return nil, fmt.Errorf("%w: transaction is %s", ErrIllegalTransition, status)
	}

	req := &request.UpdateStatusRequest{Status: decision.status}
	if decision.reason != "" {
		reason := decision.reason
		req.Reason = &reason
	}

	return d.UpdateStatus(ctx, trx.ID, req)
}
