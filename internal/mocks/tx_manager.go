package mocks

import "context"

// TxManager runs the callback inline and counts transactions.
type TxManager struct {
	Runs int
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Runs++
	return fn(ctx)
}
