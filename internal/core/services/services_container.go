package services

import (
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.FeeItem = NewFeeItemService(repos.FeeItemRepo)
	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.FeeItemRepo, cfg.ReceiptPrefix, cfg.DisplayLocation)
	container.Void = NewVoidService(repos.VoidRequestRepo, repos.ReceiptRepo)
	container.Reporting = NewReportingService(repos.ReceiptRepo, container.Receipt, repos.PaymentRecordRepo, cfg.DisplayLocation)

	return container
}
