package pos

import "context"

//go:generate mockgen -source=ports.go -package pos -destination ports_mock.go CatalogProvider TransactionService

// CatalogProvider lists the sellable products of a branch.
type CatalogProvider interface {
	FetchCatalog(c context.Context, branchID string, search string) ([]Product, error)
}

// TransactionService records a sale and returns it as stored.
type TransactionService interface {
	SubmitCheckout(c context.Context, req CheckoutRequest) (Transaction, error)
}
