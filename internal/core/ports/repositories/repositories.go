package repositories

// RepositoryProvider bundles the repository implementations the service
// container needs. Wired once at startup from the pgsql adapter.
type RepositoryProvider struct {
	ReceiptRepo       ReceiptRepositoryWithTx
	VoidRequestRepo   VoidRequestRepositoryFacade
	FeeItemRepo       FeeItemRepositoryFacade
	PaymentRecordRepo PaymentRecordRepositoryFacade
}
