package store

import (
	"context"
	"sync"
	"time"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// memoryStore is an in-memory Store implementation with the same transactional
// semantics as the PostgreSQL store: every write method validates first and
// mutates only once nothing can fail, so a rejected operation leaves no
// partial state behind. Used by tests and local development.
type memoryStore struct {
	mu sync.RWMutex

	tokens     map[uint64]schema.Token
	owners     map[uint64]string
	ownerIndex map[string][]uint64
	history    map[uint64][]uint64
	breeding   map[[2]uint64]schema.BreedingRecord
	balances   map[string]uint64
	counters   map[string]uint64
	flags      map[string]bool
	changes    []schema.ChangesJournal
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{
		tokens:     make(map[uint64]schema.Token),
		owners:     make(map[uint64]string),
		ownerIndex: make(map[string][]uint64),
		history:    make(map[uint64][]uint64),
		breeding:   make(map[[2]uint64]schema.BreedingRecord),
		balances:   make(map[string]uint64),
		counters:   make(map[string]uint64),
		flags:      make(map[string]bool),
	}
}

func (s *memoryStore) GetToken(_ context.Context, tokenID uint64) (*schema.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (s *memoryStore) GetOwner(_ context.Context, tokenID uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owners[tokenID], nil
}

func (s *memoryStore) GetOwnerIndex(_ context.Context, owner string) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.ownerIndex[owner]
	out := make([]uint64, len(index))
	copy(out, index)
	return out, nil
}

func (s *memoryStore) GetEvolutionHistory(_ context.Context, tokenID uint64) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.history[tokenID]
	out := make([]uint64, len(history))
	copy(out, history)
	return out, nil
}

func (s *memoryStore) GetBalance(_ context.Context, identity string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[identity], nil
}

func (s *memoryStore) GetCounter(_ context.Context, key string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counterLocked(key), nil
}

func (s *memoryStore) GetFlag(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.flags[key]; ok {
		return value, nil
	}
	return flagDefaults[key], nil
}

func (s *memoryStore) GetBreedingRecord(_ context.Context, parentOne, parentTwo uint64) (*schema.BreedingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.breeding[[2]uint64{parentOne, parentTwo}]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memoryStore) ListChanges(_ context.Context, anchor uint64, limit int) ([]schema.ChangesJournal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []schema.ChangesJournal
	for _, change := range s.changes {
		if change.ID <= anchor {
			continue
		}
		out = append(out, change)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memoryStore) SetFlag(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
	return nil
}

func (s *memoryStore) Deposit(_ context.Context, identity string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[identity] += amount
	return nil
}

func (s *memoryStore) CreateTokenMint(_ context.Context, input MintInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNewTokenLocked(input.Token, input.Owner, input.Payment); err != nil {
		return err
	}

	s.settleLocked(input.Payment)
	s.persistNewTokenLocked(input.Token, input.Owner)
	s.counters[KeyTotalMinted] = s.counterLocked(KeyTotalMinted) + 1
	s.journalLocked(input.Token.ID, domain.EventTypeMint, input.Token.BirthBlock, input.JournalMeta)
	return nil
}

func (s *memoryStore) ApplyEvolution(_ context.Context, input EvolutionInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[input.TokenID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if token.Generation+1 != input.Generation {
		return ErrStaleState
	}
	if err := s.checkFundsLocked(input.Payment); err != nil {
		return err
	}

	s.settleLocked(input.Payment)

	token.SetTraits(input.Traits)
	token.RarityScore = input.RarityScore
	token.Generation = input.Generation
	token.EvolutionCount++
	token.LastEvolutionBlock = input.BlockHeight
	s.tokens[input.TokenID] = token

	history := append(s.history[input.TokenID], input.BlockHeight)
	if len(history) > schema.EvolutionHistoryCapacity {
		history = history[len(history)-schema.EvolutionHistoryCapacity:]
	}
	s.history[input.TokenID] = history

	s.counters[KeyTotalEvolved] = s.counterLocked(KeyTotalEvolved) + 1
	s.journalLocked(input.TokenID, domain.EventTypeEvolve, input.BlockHeight, input.JournalMeta)
	return nil
}

func (s *memoryStore) CreateTokenBreed(_ context.Context, input BreedInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNewTokenLocked(input.Token, input.Owner, input.Payment); err != nil {
		return err
	}

	s.settleLocked(input.Payment)
	s.persistNewTokenLocked(input.Token, input.Owner)

	key := [2]uint64{*input.Token.ParentOne, *input.Token.ParentTwo}
	s.breeding[key] = schema.BreedingRecord{
		ParentOne:   key[0],
		ParentTwo:   key[1],
		OffspringID: input.Token.ID,
		CreatedAt:   time.Now(),
	}

	s.counters[KeyTotalMinted] = s.counterLocked(KeyTotalMinted) + 1
	s.counters[KeyTotalBred] = s.counterLocked(KeyTotalBred) + 1
	s.journalLocked(input.Token.ID, domain.EventTypeBreed, input.Token.BirthBlock, input.JournalMeta)
	return nil
}

func (s *memoryStore) TransferOwnership(_ context.Context, input TransferInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[input.TokenID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if owner != input.From {
		return domain.ErrUnauthorized
	}

	s.owners[input.TokenID] = input.To
	s.journalLocked(input.TokenID, domain.EventTypeTransfer, input.BlockHeight, input.JournalMeta)
	return nil
}

func (s *memoryStore) counterLocked(key string) uint64 {
	if value, ok := s.counters[key]; ok {
		return value
	}
	return counterDefaults[key]
}

func (s *memoryStore) checkNewTokenLocked(token schema.Token, owner string, payment Payment) error {
	if s.counterLocked(KeyNextTokenID) != token.ID {
		return ErrStaleState
	}
	if err := s.checkFundsLocked(payment); err != nil {
		return err
	}
	if len(s.ownerIndex[owner]) >= schema.OwnerIndexCapacity {
		return domain.ErrCapacityExceeded
	}
	return nil
}

func (s *memoryStore) checkFundsLocked(payment Payment) error {
	if payment.Amount == 0 {
		return nil
	}
	if s.balances[payment.From] < payment.Amount {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (s *memoryStore) settleLocked(payment Payment) {
	if payment.Amount == 0 {
		return
	}
	s.balances[payment.From] -= payment.Amount
	s.balances[payment.To] += payment.Amount
}

func (s *memoryStore) persistNewTokenLocked(token schema.Token, owner string) {
	token.CreatedAt = time.Now()
	s.tokens[token.ID] = token
	s.owners[token.ID] = owner
	s.ownerIndex[owner] = append(s.ownerIndex[owner], token.ID)
	s.counters[KeyNextTokenID] = token.ID + 1
}

func (s *memoryStore) journalLocked(tokenID uint64, eventType domain.EventType, blockHeight uint64, meta []byte) {
	s.changes = append(s.changes, schema.ChangesJournal{
		ID:          uint64(len(s.changes) + 1),
		TokenID:     tokenID,
		EventType:   eventType,
		BlockHeight: blockHeight,
		Meta:        meta,
	})
	// ChangedAt mirrors the DB autoCreateTime column.
	s.changes[len(s.changes)-1].ChangedAt = time.Now()
}
