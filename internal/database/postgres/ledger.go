package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

const (
	userColumns = `id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(avatar_url, ''),
		balance::text, COALESCE(referrer_id, 0), referral_code, created_at, updated_at`

	transactionColumns = `id, user_id, type, title, amount::text,
		COALESCE(nft_id, ''), COALESCE(nft_title, ''), created_at`

	ownedItemColumns = `id, user_id, nft_id, nft_title, COALESCE(nft_subtitle, ''), COALESCE(nft_description, ''),
		nft_image, nft_price::text, COALESCE(nft_collection, ''), COALESCE(nft_model, ''), COALESCE(nft_backdrop, ''),
		origin, purchased_at`

	listingColumns = `id, nft_id, nft_title, nft_image, seller_id, price::text, status, created_at, updated_at`

	depositRequestColumns = `id, user_id, amount::text, amount_rub::text, status, created_at, processed_at, processed_by`
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db DBTX
}

var (
	_ repository.Ledger = (*LedgerRepository)(nil)
	_ RowLoader         = (*LedgerRepository)(nil)
)

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.UserRecord, error) {
	var rec domain.UserRecord
	var balance string
	var referrer int64
	if err := row.Scan(&rec.ID, &rec.Username, &rec.FirstName, &rec.AvatarURL,
		&balance, &referrer, &rec.ReferralCode, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Balance, err = parseNumeric("balance", balance); err != nil {
		return nil, err
	}
	rec.ReferrerID = nullableID(referrer)
	return &rec, nil
}

func scanTransaction(row pgx.Row) (*domain.TransactionRecord, error) {
	var rec domain.TransactionRecord
	var amount string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Title, &amount,
		&rec.ItemID, &rec.ItemTitle, &rec.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Amount, err = parseNumeric("amount", amount); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanOwnedItem(row pgx.Row) (*domain.OwnedItemRecord, error) {
	var rec domain.OwnedItemRecord
	var price string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.ItemID, &rec.Title, &rec.Subtitle, &rec.Description,
		&rec.Image, &price, &rec.Collection, &rec.Model, &rec.Backdrop, &rec.Origin, &rec.PurchasedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Price, err = parseNumeric("nft_price", price); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanListing(row pgx.Row) (*domain.ListingRecord, error) {
	var rec domain.ListingRecord
	var price string
	if err := row.Scan(&rec.ID, &rec.ItemID, &rec.ItemTitle, &rec.ItemImage, &rec.SellerID,
		&price, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Price, err = parseNumeric("price", price); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetOrCreateUser inserts the user on first open and returns the stored row
func (r *LedgerRepository) GetOrCreateUser(ctx context.Context, identity int64, profile domain.Profile) (*domain.UserRecord, error) {
	if identity <= 0 {
		return nil, fmt.Errorf("%w: identity %d", domain.ErrUnknownIdentity, identity)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, first_name, avatar_url, referral_code)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
		ON CONFLICT (id) DO NOTHING`,
		identity, profile.Username, profile.FirstName, profile.AvatarURL, domain.ReferralCode(identity))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateUser, err)
	}

	rec, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, identity))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return rec, nil
}

// SetBalance overwrites the user's balance
func (r *LedgerRepository) SetBalance(ctx context.Context, identity int64, balance decimal.Decimal) (*domain.UserRecord, error) {
	rec, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET balance = $2::text::numeric, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		identity, numericArg(domain.Round2(balance))))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, identity)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSetBalance, mapCheckViolation(err, domain.ErrInvalidAmount))
	}
	return rec, nil
}

// CreateTransaction appends a history row
func (r *LedgerRepository) CreateTransaction(ctx context.Context, identity int64, tx domain.NewTransaction) (*domain.TransactionRecord, error) {
	rec, err := scanTransaction(r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, title, amount, nft_id, nft_title)
		VALUES ($1, $2, $3, $4::text::numeric, NULLIF($5, ''), NULLIF($6, ''))
		RETURNING `+transactionColumns,
		identity, string(tx.Type), tx.Title, numericArg(domain.Round2(tx.Amount)), tx.ItemID, tx.ItemTitle))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateTransaction, err)
	}
	return rec, nil
}

// GetTransaction reads one history row by id
func (r *LedgerRepository) GetTransaction(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	rec, err := scanTransaction(r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", ErrMsgFailedToGetTransaction, id, err)
	}
	return rec, nil
}

// ListTransactions returns the user's history, newest first
func (r *LedgerRepository) ListTransactions(ctx context.Context, identity int64) ([]domain.TransactionRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	var out []domain.TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	return out, nil
}

// AddOwnedItem records an item as owned. A repeat insert refreshes the row in place.
func (r *LedgerRepository) AddOwnedItem(ctx context.Context, identity int64, item domain.NewOwnedItem) (*domain.OwnedItemRecord, error) {
	rec, err := scanOwnedItem(r.db.QueryRow(ctx, `
		INSERT INTO user_nfts (user_id, nft_id, nft_title, nft_subtitle, nft_description, nft_image,
			nft_price, nft_collection, nft_model, nft_backdrop, origin)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6,
			$7::text::numeric, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)
		ON CONFLICT (user_id, nft_id) DO UPDATE SET
			nft_title = EXCLUDED.nft_title,
			nft_price = EXCLUDED.nft_price,
			origin = EXCLUDED.origin,
			purchased_at = NOW()
		RETURNING `+ownedItemColumns,
		identity, item.ItemID, item.Title, item.Subtitle, item.Description, item.Image,
		numericArg(item.Price), item.Collection, item.Model, item.Backdrop, string(item.Origin)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAddOwnedItem, mapCheckViolation(err, domain.ErrInvalidPrice))
	}
	return rec, nil
}

// GetOwnedItem reads one owned-item row by id
func (r *LedgerRepository) GetOwnedItem(ctx context.Context, id int64) (*domain.OwnedItemRecord, error) {
	rec, err := scanOwnedItem(r.db.QueryRow(ctx,
		`SELECT `+ownedItemColumns+` FROM user_nfts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", ErrMsgFailedToGetOwnedItem, id, err)
	}
	return rec, nil
}

// ListOwnedItems returns the user's items, most recently acquired first
func (r *LedgerRepository) ListOwnedItems(ctx context.Context, identity int64) ([]domain.OwnedItemRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ownedItemColumns+`
		FROM user_nfts
		WHERE user_id = $1
		ORDER BY purchased_at DESC, id DESC`, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
	}
	defer rows.Close()

	var out []domain.OwnedItemRecord
	for rows.Next() {
		rec, err := scanOwnedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOwnedItems, err)
	}
	return out, nil
}

// RemoveOwnedItem deletes the ownership row if present
func (r *LedgerRepository) RemoveOwnedItem(ctx context.Context, identity int64, itemID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_nfts WHERE user_id = $1 AND nft_id = $2`, identity, itemID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRemoveOwnedItem, err)
	}
	return nil
}

// OwnsItem checks ownership against the store
func (r *LedgerRepository) OwnsItem(ctx context.Context, identity int64, itemID string) (bool, error) {
	var owns bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_nfts WHERE user_id = $1 AND nft_id = $2)`,
		identity, itemID).Scan(&owns)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckOwnership, err)
	}
	return owns, nil
}

// CreateListing stores a pending listing
func (r *LedgerRepository) CreateListing(ctx context.Context, listing domain.NewListing) (*domain.ListingRecord, error) {
	rec, err := scanListing(r.db.QueryRow(ctx, `
		INSERT INTO nft_listings (seller_id, nft_id, nft_title, nft_image, price, status)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6)
		RETURNING `+listingColumns,
		listing.SellerID, listing.ItemID, listing.ItemTitle, listing.ItemImage,
		numericArg(listing.Price), string(domain.ListingPending)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateListing, mapCheckViolation(err, domain.ErrInvalidPrice))
	}
	return rec, nil
}

// ListListings returns the seller's listings, newest first
func (r *LedgerRepository) ListListings(ctx context.Context, sellerID int64) ([]domain.ListingRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+listingColumns+`
		FROM nft_listings
		WHERE seller_id = $1
		ORDER BY created_at DESC, id DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListListings, err)
	}
	defer rows.Close()

	var out []domain.ListingRecord
	for rows.Next() {
		rec, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListListings, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListListings, err)
	}
	return out, nil
}

// CreateDepositRequest stores a pending card deposit request
func (r *LedgerRepository) CreateDepositRequest(ctx context.Context, identity int64, amountTon, amountRub decimal.Decimal) (*domain.DepositRequestRecord, error) {
	var rec domain.DepositRequestRecord
	var ton, rub string
	err := r.db.QueryRow(ctx, `
		INSERT INTO deposit_requests (user_id, amount, amount_rub, status)
		VALUES ($1, $2::text::numeric, $3::text::numeric, $4)
		RETURNING `+depositRequestColumns,
		identity, numericArg(domain.Round2(amountTon)), numericArg(domain.Round2(amountRub)),
		string(domain.DepositRequestPending)).
		Scan(&rec.ID, &rec.UserID, &ton, &rub, &rec.Status, &rec.CreatedAt, &rec.ProcessedAt, &rec.ProcessedBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateDepositReq, mapCheckViolation(err, domain.ErrInvalidAmount))
	}
	if rec.AmountTon, err = parseNumeric("amount", ton); err != nil {
		return nil, err
	}
	if rec.AmountRub, err = parseNumeric("amount_rub", rub); err != nil {
		return nil, err
	}
	return &rec, nil
}
