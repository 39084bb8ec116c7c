package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Users    UserRepository
	Products ProductRepository
	Orders   OrderRepository
	Tickets  TicketRepository
	Resets   PasswordResetRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
