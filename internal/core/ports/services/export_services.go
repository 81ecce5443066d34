package services

import "context"

// ExportSvcFacade renders the active transaction log as CSV. Returns
// apperrors.ErrNothingToExport when there is nothing to write.
type ExportSvcFacade interface {
	TransactionsCSV(ctx context.Context) ([]byte, error)
}
