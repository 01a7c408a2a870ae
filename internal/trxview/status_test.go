package trxview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	id      string
	status  string
	proof   string
	created time.Time
}

func (r rec) TransactionID() string  { return r.id }
func (r rec) StoredStatus() string   { return r.status }
func (r rec) ProofURL() string       { return r.proof }
func (r rec) CreatedTime() time.Time { return r.created }

func TestDerive(t *testing.T) {
	tests := []struct {
		stored string
		proof  string
		want   DisplayStatus
	}{
		{"pending", "", StatusPending},
		{"pending", "https://cdn.example.com/proof.png", StatusWaitingConfirmation},
		{"success", "", StatusSuccess},
		{"success", "https://cdn.example.com/proof.png", StatusSuccess},
		{"rejected", "https://cdn.example.com/proof.png", StatusRejected},
		{"cancelled", "", StatusCancelled},
		{"refunded", "", StatusUnknown},
		{"", "", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.stored+"/"+tt.proof, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.stored, tt.proof))
		})
	}
}

func TestDerive_PendingDependsOnlyOnProof(t *testing.T) {
	for _, proof := range []string{"a", "url", "https://x/y.jpg", " "} {
		assert.Equal(t, StatusWaitingConfirmation, DeriveRecord(rec{status: "pending", proof: proof}))
	}
	assert.Equal(t, StatusPending, DeriveRecord(rec{status: "pending"}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Menunggu Konfirmasi", Describe(StatusWaitingConfirmation).Label)
	assert.Equal(t, "Menunggu Pembayaran", Describe(StatusPending).Label)
	assert.Equal(t, "Berhasil", Describe(StatusSuccess).Label)

	unknown := Describe(DisplayStatus("bogus"))
	assert.Equal(t, StatusUnknown, unknown.Status)
	assert.Equal(t, "Status Tidak Diketahui", unknown.Label)

	for _, s := range Statuses() {
		m := Describe(s)
		assert.Equal(t, s, m.Status)
		assert.NotEmpty(t, m.Label)
		assert.NotEmpty(t, m.Color)
		assert.NotEmpty(t, m.Icon)
	}
}

func TestServiceFee(t *testing.T) {
	assert.Equal(t, int64(0), ServiceFee(0))
	assert.Equal(t, int64(0), ServiceFee(-100))
	assert.Equal(t, int64(5000), ServiceFee(100000))
	// 5% of 10 is 0.5, rounded up
	assert.Equal(t, int64(1), ServiceFee(10))
	// 5% of 9 is 0.45, rounded down
	assert.Equal(t, int64(0), ServiceFee(9))
	assert.Equal(t, int64(7500), ServiceFee(150000))
}
