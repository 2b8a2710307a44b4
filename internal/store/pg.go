package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the schema for every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Token{},
		&schema.Ownership{},
		&schema.OwnerIndexEntry{},
		&schema.EvolutionHistoryEntry{},
		&schema.BreedingRecord{},
		&schema.Balance{},
		&schema.KeyValueStore{},
		&schema.ChangesJournal{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetToken retrieves a token record by identifier
func (s *pgStore) GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).Where("id = ?", tokenID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// GetOwner retrieves the current owner of a token
func (s *pgStore) GetOwner(ctx context.Context, tokenID uint64) (string, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&ownership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get owner: %w", err)
	}
	return ownership.Owner, nil
}

// GetOwnerIndex retrieves the owner's token index in append order
func (s *pgStore) GetOwnerIndex(ctx context.Context, owner string) ([]uint64, error) {
	var entries []schema.OwnerIndexEntry
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owner index: %w", err)
	}

	tokenIDs := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		tokenIDs = append(tokenIDs, entry.TokenID)
	}
	return tokenIDs, nil
}

// GetEvolutionHistory retrieves the retained evolution heights, oldest first
func (s *pgStore) GetEvolutionHistory(ctx context.Context, tokenID uint64) ([]uint64, error) {
	var entries []schema.EvolutionHistoryEntry
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get evolution history: %w", err)
	}

	heights := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		heights = append(heights, entry.BlockHeight)
	}
	return heights, nil
}

// GetBalance retrieves an identity's spendable balance
func (s *pgStore) GetBalance(ctx context.Context, identity string) (uint64, error) {
	var balance schema.Balance
	err := s.db.WithContext(ctx).Where("identity = ?", identity).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance.Amount, nil
}

// GetCounter retrieves a global counter value
func (s *pgStore) GetCounter(ctx context.Context, key string) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return counterDefaults[key], nil
		}
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}

	value, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter %q: %w", key, err)
	}
	return value, nil
}

// GetFlag retrieves a feature flag value
func (s *pgStore) GetFlag(ctx context.Context, key string) (bool, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return flagDefaults[key], nil
		}
		return false, fmt.Errorf("failed to get flag: %w", err)
	}

	value, err := strconv.ParseBool(kv.Value)
	if err != nil {
		return false, fmt.Errorf("failed to parse flag %q: %w", key, err)
	}
	return value, nil
}

// GetBreedingRecord retrieves the offspring recorded for an ordered parent pair
func (s *pgStore) GetBreedingRecord(ctx context.Context, parentOne, parentTwo uint64) (*schema.BreedingRecord, error) {
	var record schema.BreedingRecord
	err := s.db.WithContext(ctx).
		Where("parent_one = ? AND parent_two = ?", parentOne, parentTwo).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get breeding record: %w", err)
	}
	return &record, nil
}

// ListChanges retrieves journal rows with ID greater than anchor, ascending
func (s *pgStore) ListChanges(ctx context.Context, anchor uint64, limit int) ([]schema.ChangesJournal, error) {
	var changes []schema.ChangesJournal
	err := s.db.WithContext(ctx).
		Where("id > ?", anchor).
		Order("id ASC").
		Limit(limit).
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	return changes, nil
}

// SetFlag overwrites a feature flag value
func (s *pgStore) SetFlag(ctx context.Context, key string, value bool) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: strconv.FormatBool(value),
	}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set flag %q: %w", key, err)
	}
	return nil
}

// Deposit credits an identity's balance
func (s *pgStore) Deposit(ctx context.Context, identity string, amount uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return creditBalance(tx, identity, amount)
	})
}

// CreateTokenMint persists a freshly minted token and every side effect of the
// mint in a single transaction
func (s *pgStore) CreateTokenMint(ctx context.Context, input MintInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNextTokenID(tx, input.Token.ID); err != nil {
			return err
		}

		if err := settle(tx, input.Payment); err != nil {
			return err
		}

		if err := persistNewToken(tx, input.Token, input.Owner); err != nil {
			return err
		}

		if err := setCounter(tx, KeyNextTokenID, input.Token.ID+1); err != nil {
			return err
		}
		if err := incrementCounter(tx, KeyTotalMinted); err != nil {
			return err
		}

		return journal(tx, schema.ChangesJournal{
			TokenID:     input.Token.ID,
			EventType:   domain.EventTypeMint,
			BlockHeight: input.Token.BirthBlock,
			Meta:        input.JournalMeta,
		})
	})
}

// ApplyEvolution applies an evolution and every side effect in a single transaction
func (s *pgStore) ApplyEvolution(ctx context.Context, input EvolutionInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token schema.Token
		if err := tx.Where("id = ?", input.TokenID).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get token: %w", err)
		}

		// The engine computed the new generation against its own read; a
		// mismatch means another operation slipped in between.
		if token.Generation+1 != input.Generation {
			return ErrStaleState
		}

		if err := settle(tx, input.Payment); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"background":           input.Traits.Background,
			"body":                 input.Traits.Body,
			"eyes":                 input.Traits.Eyes,
			"mouth":                input.Traits.Mouth,
			"accessory":            input.Traits.Accessory,
			"rarity_score":         input.RarityScore,
			"generation":           input.Generation,
			"evolution_count":      token.EvolutionCount + 1,
			"last_evolution_block": input.BlockHeight,
		}
		if err := tx.Model(&schema.Token{}).Where("id = ?", input.TokenID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update token: %w", err)
		}

		if err := appendEvolutionHistory(tx, input.TokenID, input.BlockHeight); err != nil {
			return err
		}

		if err := incrementCounter(tx, KeyTotalEvolved); err != nil {
			return err
		}

		return journal(tx, schema.ChangesJournal{
			TokenID:     input.TokenID,
			EventType:   domain.EventTypeEvolve,
			BlockHeight: input.BlockHeight,
			Meta:        input.JournalMeta,
		})
	})
}

// CreateTokenBreed persists a bred token and every side effect in a single transaction
func (s *pgStore) CreateTokenBreed(ctx context.Context, input BreedInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNextTokenID(tx, input.Token.ID); err != nil {
			return err
		}

		if err := settle(tx, input.Payment); err != nil {
			return err
		}

		if err := persistNewToken(tx, input.Token, input.Owner); err != nil {
			return err
		}

		// Ordered parent pair; re-breeding the same pair overwrites the
		// recorded offspring.
		record := schema.BreedingRecord{
			ParentOne:   *input.Token.ParentOne,
			ParentTwo:   *input.Token.ParentTwo,
			OffspringID: input.Token.ID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "parent_one"}, {Name: "parent_two"}},
			DoUpdates: clause.AssignmentColumns([]string{"offspring_id"}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record breeding pair: %w", err)
		}

		if err := setCounter(tx, KeyNextTokenID, input.Token.ID+1); err != nil {
			return err
		}
		if err := incrementCounter(tx, KeyTotalMinted); err != nil {
			return err
		}
		if err := incrementCounter(tx, KeyTotalBred); err != nil {
			return err
		}

		return journal(tx, schema.ChangesJournal{
			TokenID:     input.Token.ID,
			EventType:   domain.EventTypeBreed,
			BlockHeight: input.Token.BirthBlock,
			Meta:        input.JournalMeta,
		})
	})
}

// TransferOwnership overwrites a token's owner in a single transaction.
// The per-owner token index is intentionally not updated.
func (s *pgStore) TransferOwnership(ctx context.Context, input TransferInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownership schema.Ownership
		if err := tx.Where("token_id = ?", input.TokenID).First(&ownership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get ownership: %w", err)
		}

		if ownership.Owner != input.From {
			return domain.ErrUnauthorized
		}

		if err := tx.Model(&schema.Ownership{}).
			Where("token_id = ?", input.TokenID).
			Update("owner", input.To).Error; err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

		return journal(tx, schema.ChangesJournal{
			TokenID:     input.TokenID,
			EventType:   domain.EventTypeTransfer,
			BlockHeight: input.BlockHeight,
			Meta:        input.JournalMeta,
		})
	})
}

// assertNextTokenID verifies the identifier computed by the engine is still
// the next one to be assigned.
func assertNextTokenID(tx *gorm.DB, tokenID uint64) error {
	next, err := txCounter(tx, KeyNextTokenID)
	if err != nil {
		return err
	}
	if next != tokenID {
		return ErrStaleState
	}
	return nil
}

// settle debits the payer and credits the receiver. The payer must hold at
// least the payment amount.
func settle(tx *gorm.DB, payment Payment) error {
	if payment.Amount == 0 {
		return nil
	}

	var payer schema.Balance
	err := tx.Where("identity = ?", payment.From).First(&payer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to get payer balance: %w", err)
	}
	if payer.Amount < payment.Amount {
		return domain.ErrInsufficientFunds
	}

	if err := tx.Model(&schema.Balance{}).
		Where("identity = ?", payment.From).
		Update("amount", payer.Amount-payment.Amount).Error; err != nil {
		return fmt.Errorf("failed to debit payer: %w", err)
	}

	return creditBalance(tx, payment.To, payment.Amount)
}

// creditBalance adds amount to an identity's balance, creating the row if needed.
func creditBalance(tx *gorm.DB, identity string, amount uint64) error {
	balance := schema.Balance{Identity: identity, Amount: amount}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("balances.amount + ?", amount)}),
	}).Create(&balance).Error; err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// persistNewToken creates the token record, its ownership and the owner-index
// entry. The owner index rejects appends beyond its fixed capacity.
func persistNewToken(tx *gorm.DB, token schema.Token, owner string) error {
	var indexed int64
	if err := tx.Model(&schema.OwnerIndexEntry{}).
		Where("owner = ?", owner).
		Count(&indexed).Error; err != nil {
		return fmt.Errorf("failed to count owner index: %w", err)
	}
	if indexed >= schema.OwnerIndexCapacity {
		return domain.ErrCapacityExceeded
	}

	if err := tx.Create(&token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	ownership := schema.Ownership{TokenID: token.ID, Owner: owner}
	if err := tx.Create(&ownership).Error; err != nil {
		return fmt.Errorf("failed to create ownership: %w", err)
	}

	entry := schema.OwnerIndexEntry{Owner: owner, TokenID: token.ID}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append owner index: %w", err)
	}

	return nil
}

// appendEvolutionHistory appends a height to a token's history and drops the
// oldest entries beyond the fixed capacity.
func appendEvolutionHistory(tx *gorm.DB, tokenID uint64, blockHeight uint64) error {
	entry := schema.EvolutionHistoryEntry{TokenID: tokenID, BlockHeight: blockHeight}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append evolution history: %w", err)
	}

	var count int64
	if err := tx.Model(&schema.EvolutionHistoryEntry{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count evolution history: %w", err)
	}

	if count > schema.EvolutionHistoryCapacity {
		excess := count - schema.EvolutionHistoryCapacity
		if err := tx.Where("id IN (?)", tx.Model(&schema.EvolutionHistoryEntry{}).
			Select("id").
			Where("token_id = ?", tokenID).
			Order("id ASC").
			Limit(int(excess)),
		).Delete(&schema.EvolutionHistoryEntry{}).Error; err != nil {
			return fmt.Errorf("failed to trim evolution history: %w", err)
		}
	}

	return nil
}

// txCounter reads a counter inside a transaction.
func txCounter(tx *gorm.DB, key string) (uint64, error) {
	var kv schema.KeyValueStore
	err := tx.Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return counterDefaults[key], nil
		}
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}

	value, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter %q: %w", key, err)
	}
	return value, nil
}

// setCounter writes a counter inside a transaction.
func setCounter(tx *gorm.DB, key string, value uint64) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: strconv.FormatUint(value, 10),
	}
	if err := tx.Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set counter %q: %w", key, err)
	}
	return nil
}

// incrementCounter adds one to a counter inside a transaction.
func incrementCounter(tx *gorm.DB, key string) error {
	current, err := txCounter(tx, key)
	if err != nil {
		return err
	}
	return setCounter(tx, key, current+1)
}

// journal appends a changes-journal row inside a transaction.
func journal(tx *gorm.DB, row schema.ChangesJournal) error {
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}
