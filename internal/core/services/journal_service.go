package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// journalService provides core journal entry operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	ledger      portssvc.AccountPostingSvc
	uow         portsrepo.UnitOfWork
	periodGate  portssvc.FiscalYearReaderSvc
}

// JournalServiceOption configures a journal service.
type JournalServiceOption func(*journalService)

// WithPeriodGate rejects postings dated inside a closed fiscal year.
func WithPeriodGate(gate portssvc.FiscalYearReaderSvc) JournalServiceOption {
	return func(s *journalService) {
		s.periodGate = gate
	}
}

// WithJournalClock sets the clock used for audit fields.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Clock = clock
	}
}

// NewJournalService creates a new JournalService. Balances are moved only
// through ledger, which owns the debit/credit sign rule.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	ledger portssvc.AccountPostingSvc,
	uow portsrepo.UnitOfWork,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
		uow:         uow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrDescriptionMissing
	}
	if req.Date.IsZero() {
		return nil, domain.ErrDateMissing
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Date:        domain.DateOnly(req.Date),
		Description: description,
		Reference:   req.Reference,
		Lines:       make([]domain.JournalEntryLine, 0, len(req.Lines)),
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}

	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		for i, lr := range req.Lines {
			line, err := s.newLine(ctx, lr)
			if err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
			if err := entry.AddLine(line); err != nil {
				return fmt.Errorf("line %d: %w", i, err)
			}
		}

		number, err := s.journalRepo.NextEntryNumber(ctx)
		if err != nil {
			return err
		}
		entry.EntryNumber = number
		return s.journalRepo.SaveJournalEntry(ctx, entry)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// newLine resolves the line's account, which must exist and be active.
func (s *journalService) newLine(ctx context.Context, req dto.JournalLineRequest) (domain.JournalEntryLine, error) {
	line := domain.JournalEntryLine{
		LineID:    uuid.NewString(),
		AccountID: req.AccountID,
		Debit:     req.Debit,
		Credit:    req.Credit,
		Memo:      req.Memo,
	}
	if err := line.Validate(); err != nil {
		return line, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return line, err
	}
	if !account.IsActive {
		return line, fmt.Errorf("%w: %s", domain.ErrAccountInactive, account.Code)
	}
	return line, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s after %s", domain.ErrInvalidDateRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	entries, err := s.journalRepo.FindJournalEntriesByDateRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries",
			slog.Time("from", from),
			slog.Time("to", to))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// modifyDraft loads the entry, applies change and saves it in one unit of work.
func (s *journalService) modifyDraft(ctx context.Context, entryID, userID string, change func(ctx context.Context, e *domain.JournalEntry) error) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindJournalEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Posted {
			return domain.ErrEntryPosted
		}
		if err := change(ctx, entry); err != nil {
			return err
		}
		entry.Touch(userID, s.Now())
		return s.journalRepo.UpdateJournalEntry(ctx, entry)
	})
	return entry, err
}

func (s *journalService) AddLine(ctx context.Context, entryID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.modifyDraft(ctx, entryID, userID, func(ctx context.Context, e *domain.JournalEntry) error {
		line, err := s.newLine(ctx, req)
		if err != nil {
			return err
		}
		return e.AddLine(line)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to add journal line",
			slog.String("entry_id", entryID),
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogDebug(ctx, "Journal line added", slog.String("entry_id", entryID), slog.Int("line_count", len(entry.Lines)))
	return entry, nil
}

func (s *journalService) RemoveLine(ctx context.Context, entryID string, index int, userID string) (*domain.JournalEntry, error) {
	entry, err := s.modifyDraft(ctx, entryID, userID, func(_ context.Context, e *domain.JournalEntry) error {
		return e.RemoveLine(index)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to remove journal line", slog.String("entry_id", entryID), slog.Int("index", index))
		return nil, err
	}
	return entry, nil
}

// PostJournalEntry applies every line to its account and marks the entry
// posted. Either all balances move and the flag flips, or nothing changes.
func (s *journalService) PostJournalEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindJournalEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		return s.post(ctx, entry, userID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted successfully",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("total", entry.TotalDebit().String()))
	return entry, nil
}

// post must run inside a unit of work.
func (s *journalService) post(ctx context.Context, entry *domain.JournalEntry, userID string) error {
	if err := entry.CanPost(); err != nil {
		return fmt.Errorf("journal entry %d: %w", entry.EntryNumber, err)
	}
	if s.periodGate != nil {
		if err := s.periodGate.EnsureDatePostable(ctx, entry.Date); err != nil {
			return err
		}
	}

	for _, line := range entry.Lines {
		if line.Debit.IsPositive() {
			if _, err := s.ledger.Debit(ctx, line.AccountID, line.Debit, userID); err != nil {
				return err
			}
		}
		if line.Credit.IsPositive() {
			if _, err := s.ledger.Credit(ctx, line.AccountID, line.Credit, userID); err != nil {
				return err
			}
		}
	}

	entry.Posted = true
	entry.Touch(userID, s.Now())
	return s.journalRepo.UpdateJournalEntry(ctx, entry)
}

// ReverseJournalEntry creates and posts an entry with every line's debit and
// credit swapped. The original keeps its lines and posted flag and only gains
// a link to the reversal.
func (s *journalService) ReverseJournalEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	var reversal domain.JournalEntry
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		original, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if err := original.CanReverse(); err != nil {
			return fmt.Errorf("journal entry %d: %w", original.EntryNumber, err)
		}

		date := req.Date
		if date.IsZero() {
			date = s.Now()
		}
		description := strings.TrimSpace(req.Description)
		if description == "" {
			description = fmt.Sprintf("Reversal of entry #%d", original.EntryNumber)
		}

		number, err := s.journalRepo.NextEntryNumber(ctx)
		if err != nil {
			return err
		}
		originalID := original.EntryID
		reversal = domain.JournalEntry{
			EntryID:         uuid.NewString(),
			EntryNumber:     number,
			Date:            domain.DateOnly(date),
			Description:     description,
			Reference:       original.Reference,
			Lines:           make([]domain.JournalEntryLine, len(original.Lines)),
			ReversesEntryID: &originalID,
			Version:         1,
			AuditFields:     domain.NewAuditFields(userID, s.Now()),
		}
		for i, line := range original.Lines {
			swapped := line.Swapped()
			swapped.LineID = uuid.NewString()
			reversal.Lines[i] = swapped
		}

		if err := s.journalRepo.SaveJournalEntry(ctx, reversal); err != nil {
			return err
		}
		if err := s.post(ctx, &reversal, userID); err != nil {
			return err
		}

		reversalID := reversal.EntryID
		original.ReversedByEntryID = &reversalID
		original.Touch(userID, s.Now())
		return s.journalRepo.UpdateJournalEntry(ctx, original)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed successfully",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.Int64("reversal_entry_number", reversal.EntryNumber))
	return &reversal, nil
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID string) error {
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Posted {
			return fmt.Errorf("journal entry %d: %w", entry.EntryNumber, domain.ErrEntryPosted)
		}
		return s.journalRepo.DeleteJournalEntry(ctx, entryID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}
