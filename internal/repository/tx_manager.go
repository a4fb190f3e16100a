package repository

import "context"

// repositories bound to one open transaction
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
}

// TransactionManager hides begin/commit/rollback from use cases.
// fn returning an error rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
