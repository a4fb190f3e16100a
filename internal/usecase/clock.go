package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type OrderCodeGenerator interface {
	NewOrderCode() string
}

// UUIDOrderCodes issues ORD-<uuid v7 hex>. v7 is time ordered and carries
// 74 random bits; the unique index on order_code catches the rest.
type UUIDOrderCodes struct{}

func (UUIDOrderCodes) NewOrderCode() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}
