package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== INVOICE ID ====================

// GenerateInvoiceID creates a human readable invoice id for a transaction.
func GenerateInvoiceID(now time.Time) string {
	// Format: INV-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("INV-%s-%s-%s", datePart, timePart, randomPart)
}
