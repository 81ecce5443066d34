package services

// ServiceContainer bundles every service facade for injection into the
// handlers layer.
type ServiceContainer struct {
	Ledger   LedgerSvcFacade
	Stats    StatsSvcFacade
	Budget   BudgetTrackerSvcFacade
	Export   ExportSvcFacade
	Settings SettingsSvcFacade
}
