package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Declared as
// an interface so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type sellerRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type conversationRepository struct {
	storage *Storage
}

type messageRepository struct {
	storage *Storage
}

type couponRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Sellers() repository.SellerRepository {
	return &sellerRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) Conversations() repository.ConversationRepository {
	return &conversationRepository{storage: s}
}

func (s *Storage) Messages() repository.MessageRepository {
	return &messageRepository{storage: s}
}

func (s *Storage) Coupons() repository.CouponRepository {
	return &couponRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sellers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            available_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            id TEXT PRIMARY KEY,
            seller_id TEXT NOT NULL REFERENCES sellers(id),
            amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS seller_transactions (
            id SERIAL PRIMARY KEY,
            seller_id TEXT NOT NULL REFERENCES sellers(id),
            withdrawal_id TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id TEXT PRIMARY KEY,
            group_title TEXT UNIQUE NOT NULL,
            members TEXT[] NOT NULL,
            last_message TEXT NOT NULL DEFAULT '',
            last_message_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS messages (
            id TEXT PRIMARY KEY,
            conversation_id TEXT NOT NULL,
            sender TEXT NOT NULL,
            body TEXT NOT NULL,
            image_public_id TEXT,
            image_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            id TEXT PRIMARY KEY,
            shop_id TEXT NOT NULL,
            name TEXT UNIQUE NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            min_amount DOUBLE PRECISION,
            max_amount DOUBLE PRECISION,
            expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_created ON withdrawals(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_seller ON seller_transactions(seller_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_coupons_expiry ON coupons(expires_at) WHERE expires_at IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- SellerRepository implementation ---

func (r *sellerRepository) GetByID(ctx context.Context, id string) (*model.Seller, error) {
	const query = `SELECT id, name, email, available_balance, created_at FROM sellers WHERE id=$1`
	var s model.Seller
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.AvailableBalance, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sellerRepository) AppendTransaction(ctx context.Context, sellerID string, record model.TransactionRecord) error {
	const query = `INSERT INTO seller_transactions (seller_id, withdrawal_id, amount, status, updated_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, sellerID, record.WithdrawalID, record.Amount, record.Status, record.UpdatedAt)
	return err
}

func (r *sellerRepository) Transactions(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
	const query = `SELECT withdrawal_id, amount, status, updated_at
                   FROM seller_transactions WHERE seller_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TransactionRecord
	for rows.Next() {
		var rec model.TransactionRecord
		if err := rows.Scan(&rec.WithdrawalID, &rec.Amount, &rec.Status, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- WithdrawalRepository implementation ---

func (r *withdrawalRepository) Create(ctx context.Context, sellerID string, amount float64) (*model.Withdrawal, error) {
	w := &model.Withdrawal{
		ID:       uuid.NewString(),
		SellerID: sellerID,
		Amount:   amount,
		Status:   model.WithdrawalStatusPending,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const balanceQuery = `SELECT available_balance FROM sellers WHERE id=$1 FOR UPDATE`
		var balance float64
		if err := tx.QueryRow(ctx, balanceQuery, sellerID).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if balance < amount {
			return domainErrors.ErrInsufficientBalance
		}

		const insertQuery = `INSERT INTO withdrawals (id, seller_id, amount, status)
                             VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
		if err := tx.QueryRow(ctx, insertQuery, w.ID, sellerID, amount, w.Status).Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
			return err
		}

		const debitQuery = `UPDATE sellers SET available_balance = available_balance - $2 WHERE id=$1`
		if _, err := tx.Exec(ctx, debitQuery, sellerID, amount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) Settle(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
	w := &model.Withdrawal{
		ID:       id,
		SellerID: sellerID,
		Status:   model.WithdrawalStatusSucceeded,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT seller_id, status FROM withdrawals WHERE id=$1 FOR UPDATE`
		var ownerID string
		var status model.WithdrawalStatus
		if err := tx.QueryRow(ctx, lockQuery, id).Scan(&ownerID, &status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if ownerID != sellerID {
			return domainErrors.ErrSellerMismatch
		}
		if status != model.WithdrawalStatusPending {
			return domainErrors.ErrAlreadySettled
		}

		const updateQuery = `UPDATE withdrawals SET status=$2, updated_at=NOW()
                             WHERE id=$1 RETURNING amount, created_at, updated_at`
		if err := tx.QueryRow(ctx, updateQuery, id, w.Status).Scan(&w.Amount, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return err
		}

		const appendQuery = `INSERT INTO seller_transactions (seller_id, withdrawal_id, amount, status, updated_at)
                             VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, appendQuery, sellerID, id, w.Amount, w.Status, w.UpdatedAt); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*model.Withdrawal, error) {
	const query = `SELECT id, seller_id, amount, status, created_at, updated_at FROM withdrawals WHERE id=$1`
	var w model.Withdrawal
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&w.ID, &w.SellerID, &w.Amount, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) List(ctx context.Context) ([]model.Withdrawal, error) {
	const query = `SELECT id, seller_id, amount, status, created_at, updated_at
                   FROM withdrawals ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		var w model.Withdrawal
		if err := rows.Scan(&w.ID, &w.SellerID, &w.Amount, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ConversationRepository implementation ---

func (r *conversationRepository) Create(ctx context.Context, groupTitle string, members []string) (*model.Conversation, error) {
	conv := &model.Conversation{
		ID:         uuid.NewString(),
		GroupTitle: groupTitle,
		Members:    members,
	}
	const query = `INSERT INTO conversations (id, group_title, members)
                   VALUES ($1, $2, $3) RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, conv.ID, groupTitle, members).Scan(&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return conv, nil
}

func (r *conversationRepository) GetByTitle(ctx context.Context, groupTitle string) (*model.Conversation, error) {
	const query = `SELECT id, group_title, members, last_message, last_message_id, created_at, updated_at
                   FROM conversations WHERE group_title=$1`
	var conv model.Conversation
	err := r.storage.pool.QueryRow(ctx, query, groupTitle).Scan(
		&conv.ID, &conv.GroupTitle, &conv.Members, &conv.LastMessage, &conv.LastMessageID, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByMember(ctx context.Context, memberID string) ([]model.Conversation, error) {
	const query = `SELECT id, group_title, members, last_message, last_message_id, created_at, updated_at
                   FROM conversations WHERE $1 = ANY(members)
                   ORDER BY updated_at DESC, created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.GroupTitle, &conv.Members, &conv.LastMessage, &conv.LastMessageID, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *conversationRepository) UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error) {
	const query = `UPDATE conversations SET last_message=$2, last_message_id=$3, updated_at=NOW()
                   WHERE id=$1
                   RETURNING group_title, members, created_at, updated_at`
	conv := &model.Conversation{ID: id, LastMessage: lastMessage, LastMessageID: lastMessageID}
	err := r.storage.pool.QueryRow(ctx, query, id, lastMessage, lastMessageID).Scan(
		&conv.GroupTitle, &conv.Members, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return conv, nil
}

// --- MessageRepository implementation ---

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	created := *msg
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	var publicID, url *string
	if created.Image != nil {
		publicID = &created.Image.PublicID
		url = &created.Image.URL
	}

	const query = `INSERT INTO messages (id, conversation_id, sender, body, image_public_id, image_url)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, created.ID, created.ConversationID, created.Sender, created.Text, publicID, url).Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	const query = `SELECT id, conversation_id, sender, body, image_public_id, image_url, created_at
                   FROM messages WHERE conversation_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Message
	for rows.Next() {
		var m model.Message
		var publicID, url *string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Text, &publicID, &url, &m.CreatedAt); err != nil {
			return nil, err
		}
		if publicID != nil && url != nil {
			m.Image = &model.Attachment{PublicID: *publicID, URL: *url}
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CouponRepository implementation ---

func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	created := *coupon
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	const query = `INSERT INTO coupons (id, shop_id, name, value, min_amount, max_amount, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, created.ID, created.ShopID, created.Name, created.Value,
		created.MinAmount, created.MaxAmount, created.ExpiresAt).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *couponRepository) GetByName(ctx context.Context, name string) (*model.Coupon, error) {
	const query = `SELECT id, shop_id, name, value, min_amount, max_amount, expires_at, created_at
                   FROM coupons WHERE name=$1`
	var c model.Coupon
	err := r.storage.pool.QueryRow(ctx, query, name).Scan(
		&c.ID, &c.ShopID, &c.Name, &c.Value, &c.MinAmount, &c.MaxAmount, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) ListByShop(ctx context.Context, shopID string) ([]model.Coupon, error) {
	const query = `SELECT id, shop_id, name, value, min_amount, max_amount, expires_at, created_at
                   FROM coupons WHERE shop_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.ShopID, &c.Name, &c.Value, &c.MinAmount, &c.MaxAmount, &c.ExpiresAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM coupons WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *couponRepository) SelectExpired(ctx context.Context, limit int) ([]model.Coupon, error) {
	const query = `SELECT id, shop_id, name, value, min_amount, max_amount, expires_at, created_at
                   FROM coupons WHERE expires_at IS NOT NULL AND expires_at < NOW()
                   ORDER BY expires_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.ShopID, &c.Name, &c.Value, &c.MinAmount, &c.MaxAmount, &c.ExpiresAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
