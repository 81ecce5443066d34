package services

import (
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service over the shared record store.
func NewServiceContainer(repo portsrepo.LedgerRepository) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:   NewLedgerService(repo),
		Stats:    NewStatsService(repo),
		Budget:   NewBudgetTracker(repo),
		Export:   NewExportService(repo),
		Settings: NewSettingsService(repo),
	}
}
