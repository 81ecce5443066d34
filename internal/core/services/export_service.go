package services

import (
	"context"
	"strings"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
)

const csvHeader = "ID,Date,Account,Type,Category,Note,Amount,DestinationAccount"

// exportServiceImpl implements the ExportSvcFacade interface
type exportServiceImpl struct {
	BaseService
	repo portsrepo.LedgerReader
}

// NewExportService creates a new export service over the given reader
func NewExportService(repo portsrepo.LedgerReader) portssvc.ExportSvcFacade {
	return &exportServiceImpl{repo: repo}
}

// Ensure exportServiceImpl implements the ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportServiceImpl)(nil)

// TransactionsCSV renders every active transaction, newest first, one row
// each. Account and category ids resolve to display names, falling back to
// the raw id when the reference dangles. The note is always quoted, internal
// quotes doubled. Destination account is empty for non-transfer rows.
func (s *exportServiceImpl) TransactionsCSV(ctx context.Context) ([]byte, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Transactions) == 0 {
		return nil, apperrors.ErrNothingToExport
	}

	accountNames := make(map[string]string, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		categoryNames[c.ID] = c.Name
	}

	resolve := func(names map[string]string, id string) string {
		if id == "" {
			return ""
		}
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, txn := range snap.Transactions {
		note := `"` + strings.ReplaceAll(txn.Note, `"`, `""`) + `"`
		row := []string{
			txn.ID,
			txn.Date.Format("2006-01-02"),
			resolve(accountNames, txn.AccountID),
			string(txn.Type),
			resolve(categoryNames, txn.CategoryID),
			note,
			txn.Amount.String(),
			resolve(accountNames, txn.ToAccountID),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	s.LogInfo(ctx, "Transactions exported")
	return []byte(b.String()), nil
}
