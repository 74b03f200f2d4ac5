package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, entry_date, description, reference, posted,
	reverses_entry_id, reversed_by_entry_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row scanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.EntryNumber,
		&e.Date,
		&e.Description,
		&e.Reference,
		&e.Posted,
		&e.ReversesEntryID,
		&e.ReversedByEntryID,
		&e.Version,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	e.Date = domain.DateOnly(e.Date)
	return e, err
}

// loadLines fills in the lines of every entry with one query.
func (r *PgxJournalRepository) loadLines(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
		index[e.EntryID] = i
		entries[i].Lines = make([]domain.JournalEntryLine, 0)
	}

	rows, err := r.db(ctx).Query(ctx, `
		SELECT entry_id, line_id, account_id, debit, credit, memo
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`, ids)
	if err != nil {
		return mapError(err, "journal entry lines")
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		var l domain.JournalEntryLine
		if err := rows.Scan(&entryID, &l.LineID, &l.AccountID, &l.Debit, &l.Credit, &l.Memo); err != nil {
			return mapError(err, "journal entry lines")
		}
		i := index[entryID]
		entries[i].Lines = append(entries[i].Lines, l)
	}
	return mapError(rows.Err(), "journal entry lines")
}

func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1`
	e, err := scanEntry(r.db(ctx).QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, mapError(err, "journal entry "+entryID)
	}
	entries := []domain.JournalEntry{e}
	if err := r.loadLines(ctx, entries); err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// FindJournalEntriesByDateRange returns entries dated from..to inclusive, by date then number.
func (r *PgxJournalRepository) FindJournalEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_date BETWEEN $1 AND $2
		ORDER BY entry_date, entry_number;
	`
	rows, err := r.db(ctx).Query(ctx, query, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, mapError(err, "journal entries")
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, mapError(err, "journal entries")
	}
	if err := r.loadLines(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db(ctx).QueryRow(ctx, `SELECT nextval('journal_entry_number_seq')`).Scan(&next)
	return next, mapError(err, "journal entry number")
}

func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		entry.EntryID,
		entry.EntryNumber,
		entry.Date,
		entry.Description,
		entry.Reference,
		entry.Posted,
		entry.ReversesEntryID,
		entry.ReversedByEntryID,
		entry.Version,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "journal entry "+entry.EntryID)
	}
	return r.insertLines(ctx, entry)
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, entry domain.JournalEntry) error {
	if len(entry.Lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_id, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, l := range entry.Lines {
		batch.Queue(lineQuery, l.LineID, entry.EntryID, i, l.AccountID, l.Debit, l.Credit, l.Memo)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapError(err, "journal entry lines of "+entry.EntryID)
	}
	return nil
}

// UpdateJournalEntry rewrites the header and replaces the lines. Callers run
// it inside a unit of work so the replacement is atomic.
func (r *PgxJournalRepository) UpdateJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	what := "journal entry " + entry.EntryID
	query := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, reference = $5, posted = $6,
		    reverses_entry_id = $7, reversed_by_entry_id = $8,
		    last_updated_at = $9, last_updated_by = $10, version = version + 1
		WHERE entry_id = $1 AND version = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		entry.EntryID,
		entry.Version,
		entry.Date,
		entry.Description,
		entry.Reference,
		entry.Posted,
		entry.ReversesEntryID,
		entry.ReversedByEntryID,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, what)
	}
	if err := r.checkVersioned(ctx, tag, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_id = $1)`, entry.EntryID, what); err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1`, entry.EntryID); err != nil {
		return mapError(err, what)
	}
	if err := r.insertLines(ctx, *entry); err != nil {
		return err
	}
	entry.Version++
	return nil
}

func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, entryID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return mapError(err, "journal entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "journal entry "+entryID)
	}
	return nil
}
