// Package sqlite is the durable Store backend over a local sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens (creating if necessary) the database at dbPath and runs
// pending migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const cardColumns = `id, user_id, name, bank, last_four, credit_limit_cents,
current_balance_cents, due_date, min_payment_cents, interest_rate,
reward_type, color, created_at`

func (s *Store) ListCards(ctx context.Context, userID string) ([]core.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []core.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, card)
	}
	return out, rows.Err()
}

func (s *Store) CreateCard(ctx context.Context, card core.Card) (core.Card, error) {
	if err := card.Validate(); err != nil {
		return core.Card{}, err
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (`+cardColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.UserID, card.Name, card.Bank, card.LastFourDigits,
		card.CreditLimit.Cents, card.CurrentBalance.Cents, formatDate(card.DueDate),
		card.MinPayment.Cents, card.InterestRate, string(card.RewardType),
		card.Color, formatTime(card.CreatedAt))
	if err != nil {
		return core.Card{}, fmt.Errorf("insert card: %w", err)
	}
	return card, nil
}

func (s *Store) UpdateCard(ctx context.Context, userID, id string, upd store.CardUpdate) (core.Card, error) {
	card, err := s.getCard(ctx, userID, id)
	if err != nil {
		return core.Card{}, err
	}
	upd.Apply(&card)
	if err := card.Validate(); err != nil {
		return core.Card{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, bank = ?, last_four = ?, credit_limit_cents = ?,
current_balance_cents = ?, due_date = ?, min_payment_cents = ?, interest_rate = ?,
reward_type = ?, color = ? WHERE id = ?`,
		card.Name, card.Bank, card.LastFourDigits, card.CreditLimit.Cents,
		card.CurrentBalance.Cents, formatDate(card.DueDate), card.MinPayment.Cents,
		card.InterestRate, string(card.RewardType), card.Color, id)
	if err != nil {
		return core.Card{}, fmt.Errorf("update card: %w", err)
	}
	return card, nil
}

func (s *Store) DeleteCard(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireRow(res)
}

// getCard resolves a card the user owns; anyone else's card is
// ErrNotFound.
func (s *Store) getCard(ctx context.Context, userID, id string) (core.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ? AND user_id = ?`, id, userID)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, store.ErrNotFound
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

const expenseColumns = `id, card_id, user_id, amount_cents, description,
category, date, merchant, created_at`

func (s *Store) ListExpenses(ctx context.Context, userID, cardID string) ([]core.Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if cardID != "" {
		q += ` AND card_id = ?`
		args = append(args, cardID)
	}
	q += ` ORDER BY date DESC, created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, expense)
	}
	return out, rows.Err()
}

func (s *Store) CreateExpense(ctx context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}
	if _, err := s.getCard(ctx, expense.UserID, expense.CardID); err != nil {
		return core.Expense{}, err
	}
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.CardID, expense.UserID, expense.Amount.Cents,
		expense.Description, string(expense.Category), formatDate(expense.Date),
		expense.Merchant, formatTime(expense.CreatedAt))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return expense, nil
}

func (s *Store) UpdateExpense(ctx context.Context, userID, id string, upd store.ExpenseUpdate) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}

	upd.Apply(&expense)
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}
	// Moving the expense requires the target card too.
	if upd.CardID != nil {
		if _, err := s.getCard(ctx, userID, expense.CardID); err != nil {
			return core.Expense{}, err
		}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE expenses SET card_id = ?, amount_cents = ?, description = ?,
category = ?, date = ?, merchant = ? WHERE id = ?`,
		expense.CardID, expense.Amount.Cents, expense.Description,
		string(expense.Category), formatDate(expense.Date), expense.Merchant, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

const offerColumns = `id, card_id, title, description, category,
cashback_percent, expiry_date, active, min_spend_cents, created_at`

// Offers carry no user_id column; ownership goes through the card.
const offerColumnsQualified = `o.id, o.card_id, o.title, o.description, o.category,
o.cashback_percent, o.expiry_date, o.active, o.min_spend_cents, o.created_at`

func (s *Store) ListOffers(ctx context.Context, userID, cardID string) ([]core.Offer, error) {
	q := `SELECT ` + offerColumnsQualified + ` FROM offers o
JOIN cards c ON c.id = o.card_id WHERE c.user_id = ?`
	args := []any{userID}
	if cardID != "" {
		q += ` AND o.card_id = ?`
		args = append(args, cardID)
	}
	q += ` ORDER BY o.created_at DESC, o.id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var out []core.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, offer)
	}
	return out, rows.Err()
}

func (s *Store) CreateOffer(ctx context.Context, userID string, offer core.Offer) (core.Offer, error) {
	if err := offer.Validate(); err != nil {
		return core.Offer{}, err
	}
	if _, err := s.getCard(ctx, userID, offer.CardID); err != nil {
		return core.Offer{}, err
	}
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO offers (`+offerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		offer.ID, offer.CardID, offer.Title, offer.Description,
		string(offer.Category), offer.CashbackPercent, formatDate(offer.ExpiryDate),
		offer.Active, minSpendValue(offer.MinSpend), formatTime(offer.CreatedAt))
	if err != nil {
		return core.Offer{}, fmt.Errorf("insert offer: %w", err)
	}
	return offer, nil
}

func (s *Store) UpdateOffer(ctx context.Context, userID, id string, upd store.OfferUpdate) (core.Offer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+offerColumnsQualified+` FROM offers o
JOIN cards c ON c.id = o.card_id WHERE o.id = ? AND c.user_id = ?`, id, userID)
	offer, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Offer{}, store.ErrNotFound
	}
	if err != nil {
		return core.Offer{}, fmt.Errorf("get offer: %w", err)
	}

	upd.Apply(&offer)
	if err := offer.Validate(); err != nil {
		return core.Offer{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE offers SET title = ?, description = ?, category = ?,
cashback_percent = ?, expiry_date = ?, active = ?, min_spend_cents = ? WHERE id = ?`,
		offer.Title, offer.Description, string(offer.Category),
		offer.CashbackPercent, formatDate(offer.ExpiryDate), offer.Active,
		minSpendValue(offer.MinSpend), id)
	if err != nil {
		return core.Offer{}, fmt.Errorf("update offer: %w", err)
	}
	return offer, nil
}

func (s *Store) DeleteOffer(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM offers WHERE id = ?
AND card_id IN (SELECT id FROM cards WHERE user_id = ?)`, id, userID)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return requireRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (core.Card, error) {
	var (
		c                  core.Card
		dueDate, createdAt string
		rewardType         string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Bank, &c.LastFourDigits,
		&c.CreditLimit.Cents, &c.CurrentBalance.Cents, &dueDate,
		&c.MinPayment.Cents, &c.InterestRate, &rewardType, &c.Color, &createdAt)
	if err != nil {
		return core.Card{}, err
	}
	c.RewardType = core.RewardType(rewardType)
	if c.DueDate, err = parseDate(dueDate); err != nil {
		return core.Card{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Card{}, err
	}
	return c, nil
}

func scanExpense(row scanner) (core.Expense, error) {
	var (
		e               core.Expense
		date, createdAt string
		category        string
	)
	err := row.Scan(&e.ID, &e.CardID, &e.UserID, &e.Amount.Cents,
		&e.Description, &category, &date, &e.Merchant, &createdAt)
	if err != nil {
		return core.Expense{}, err
	}
	e.Category = core.Category(category)
	if e.Date, err = parseDate(date); err != nil {
		return core.Expense{}, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func scanOffer(row scanner) (core.Offer, error) {
	var (
		o                     core.Offer
		expiryDate, createdAt string
		category              string
		minSpend              sql.NullInt64
	)
	err := row.Scan(&o.ID, &o.CardID, &o.Title, &o.Description, &category,
		&o.CashbackPercent, &expiryDate, &o.Active, &minSpend, &createdAt)
	if err != nil {
		return core.Offer{}, err
	}
	o.Category = core.Category(category)
	if minSpend.Valid {
		o.MinSpend = &core.Money{Cents: minSpend.Int64}
	}
	if o.ExpiryDate, err = parseDate(expiryDate); err != nil {
		return core.Offer{}, err
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Offer{}, err
	}
	return o, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func minSpendValue(m *core.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: m.Cents, Valid: true}
}

// Dates are stored day-granular as 2006-01-02, timestamps as RFC 3339.

func formatDate(t time.Time) string { return t.UTC().Format("2006-01-02") }

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
