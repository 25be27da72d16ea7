package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-inventory/internal/lock"
	"smart-inventory/internal/model"
	"smart-inventory/internal/repository"
)

// StockMovement is a request to move stock of one product. Quantity is
// positive for incoming and outgoing movements and signed for adjustments.
type StockMovement struct {
	SKU      string `json:"sku" validate:"required,notblank"`
	Quantity int    `json:"quantity"`
	Actor    string `json:"actor" validate:"required,notblank"`
	Reason   string `json:"reason" validate:"required,notblank"`
}

// LedgerService is the only writer of Product.CurrentStock. Every stock change
// is committed together with exactly one StockTransaction.
type LedgerService interface {
	RecordIncoming(ctx context.Context, mv StockMovement, isNewProduct bool) (*model.StockTransaction, error)
	RecordIncomingTx(ctx context.Context, tx *gorm.DB, mv StockMovement, isNewProduct bool) (*model.StockTransaction, error)
	RecordOutgoing(ctx context.Context, mv StockMovement) (*model.StockTransaction, error)
	RecordAdjustment(ctx context.Context, mv StockMovement) (*model.StockTransaction, error)
	GetTransactions(ctx context.Context) ([]model.StockTransaction, error)
	GetTransactionsForProduct(ctx context.Context, sku string) ([]model.StockTransaction, error)

	AddReasonType(ctx context.Context, reason string) (*model.ReasonType, error)
	DeleteReasonType(ctx context.Context, id uint) error
	GetReasonTypes(ctx context.Context) ([]model.ReasonType, error)
	ResolveReasonID(ctx context.Context, reason string) (uint, error)
	ResolveReasonText(ctx context.Context, id uint) (string, error)
}

type ledgerService struct {
	db       *gorm.DB
	products repository.ProductRepository
	entries  repository.StockTransactionRepository
	reasons  repository.ReasonRepository
	users    repository.UserRepository
	locker   lock.Locker
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewLedgerService(
	db *gorm.DB,
	products repository.ProductRepository,
	entries repository.StockTransactionRepository,
	reasons repository.ReasonRepository,
	users repository.UserRepository,
	locker lock.Locker,
	events EventPublisher,
	log *zap.Logger,
) LedgerService {
	return &ledgerService{
		db:       db,
		products: products,
		entries:  entries,
		reasons:  reasons,
		users:    users,
		locker:   locker,
		events:   publisherOrNop(events),
		log:      log,
		now:      time.Now,
	}
}

func (s *ledgerService) RecordIncoming(ctx context.Context, mv StockMovement, isNewProduct bool) (*model.StockTransaction, error) {
	return s.record(ctx, mv, model.TxIn, isNewProduct)
}

// RecordIncomingTx records an incoming movement on a transaction owned by the
// caller. The caller commits and is responsible for publishing; the per-SKU
// lock is not taken because the caller already holds a connection and the row
// lock serializes writers.
func (s *ledgerService) RecordIncomingTx(ctx context.Context, tx *gorm.DB, mv StockMovement, isNewProduct bool) (*model.StockTransaction, error) {
	if err := checkMovement(mv, model.TxIn); err != nil {
		return nil, err
	}
	return s.apply(tx.WithContext(ctx), mv, model.TxIn, isNewProduct)
}

func (s *ledgerService) RecordOutgoing(ctx context.Context, mv StockMovement) (*model.StockTransaction, error) {
	return s.record(ctx, mv, model.TxOut, false)
}

func (s *ledgerService) RecordAdjustment(ctx context.Context, mv StockMovement) (*model.StockTransaction, error) {
	return s.record(ctx, mv, model.TxAdjust, false)
}

func checkMovement(mv StockMovement, kind model.TransactionKind) error {
	if err := validate(&mv); err != nil {
		return err
	}
	if kind == model.TxAdjust {
		if mv.Quantity == 0 {
			return invalid("StockMovement.Quantity", "ne")
		}
	} else if mv.Quantity <= 0 {
		return invalid("StockMovement.Quantity", "gt")
	}
	return nil
}

func (s *ledgerService) record(ctx context.Context, mv StockMovement, kind model.TransactionKind, opening bool) (*model.StockTransaction, error) {
	if err := checkMovement(mv, kind); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, mv.SKU)
	if err != nil {
		s.log.Warn("stock lock not acquired", zap.String("sku", mv.SKU), zap.Error(err))
		return nil, fmt.Errorf("lock %s: %w: %w", mv.SKU, ErrPersistence, err)
	}
	defer unlock()

	var entry *model.StockTransaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.apply(tx, mv, kind, opening)
		return err
	})
	if err != nil {
		if passThrough(err) {
			return nil, err
		}
		return nil, storeErr(s.log, "commit stock movement", err, nil, nil)
	}

	s.log.Info("stock movement recorded",
		zap.String("sku", entry.ProductSKU),
		zap.String("kind", string(entry.Kind)),
		zap.Int("change", entry.QuantityChange),
		zap.Int("new_stock", entry.NewStock),
		zap.Uint("transaction_id", entry.ID),
	)
	s.publish(entry, mv.Actor)
	return entry, nil
}

// apply does the read-check-write cycle on tx. For an opening entry the
// product row was just created with its stock already set, so only the ledger
// row is written.
func (s *ledgerService) apply(tx *gorm.DB, mv StockMovement, kind model.TransactionKind, opening bool) (*model.StockTransaction, error) {
	product, err := s.products.FindBySKUForUpdate(tx, mv.SKU)
	if err != nil {
		return nil, storeErr(s.log, "find product", err, ErrProductNotFound, nil)
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	actorKind, actor, err := s.users.FindActor(tx, mv.Actor)
	if err != nil {
		return nil, storeErr(s.log, "find actor", err, ErrActorNotFound, nil)
	}

	reason, err := s.reasons.FindByReasonTx(tx, mv.Reason)
	if err != nil {
		return nil, storeErr(s.log, "find reason", err, ErrReasonNotFound, nil)
	}

	prev := product.CurrentStock
	var next int
	switch kind {
	case model.TxIn:
		if opening {
			if prev != mv.Quantity {
				return nil, ErrOpeningStock
			}
			prev = 0
		}
		if mv.Quantity > math.MaxInt-prev {
			return nil, invalid("StockMovement.Quantity", "max")
		}
		next = prev + mv.Quantity
	case model.TxOut:
		if mv.Quantity > prev {
			return nil, fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, mv.SKU, prev, mv.Quantity)
		}
		next = prev - mv.Quantity
	case model.TxAdjust:
		if mv.Quantity > 0 && mv.Quantity > math.MaxInt-prev {
			return nil, invalid("StockMovement.Quantity", "max")
		}
		next = prev + mv.Quantity
		if next < 0 {
			return nil, fmt.Errorf("%w: %s has %d, adjustment %d", ErrInsufficientStock, mv.SKU, prev, mv.Quantity)
		}
	}

	if !opening {
		if err := s.products.UpdateStock(tx, product.SKU, next, mv.Actor); err != nil {
			return nil, storeErr(s.log, "update stock", err, ErrProductNotFound, nil)
		}
	}

	entry := &model.StockTransaction{
		ProductSKU:     product.SKU,
		ActorKind:      actorKind,
		ActorID:        actor.ID,
		Date:           s.now().UTC(),
		ReasonTypeID:   reason.ID,
		Kind:           kind,
		QuantityChange: mv.Quantity,
		PreviousStock:  prev,
		NewStock:       next,
	}
	if err := s.entries.Create(tx, entry); err != nil {
		return nil, storeErr(s.log, "append stock transaction", err, nil, nil)
	}
	return entry, nil
}

func (s *ledgerService) publish(entry *model.StockTransaction, actor string) {
	action, verb := ActionStockIn, "received"
	switch entry.Kind {
	case model.TxOut:
		action, verb = ActionStockOut, "issued"
	case model.TxAdjust:
		action, verb = ActionStockAdjusted, "adjusted"
	}
	s.events.Publish(EventStockUpdate, action,
		fmt.Sprintf("%s %s %d units of %s", actor, verb, entry.QuantityChange, entry.ProductSKU),
		entry,
	)
}

func (s *ledgerService) GetTransactions(ctx context.Context) ([]model.StockTransaction, error) {
	entries, err := s.entries.FindAll(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list stock transactions", err, nil, nil)
	}
	return entries, nil
}

// GetTransactionsForProduct returns an empty list for an unknown sku.
func (s *ledgerService) GetTransactionsForProduct(ctx context.Context, sku string) ([]model.StockTransaction, error) {
	entries, err := s.entries.FindBySKU(ctx, sku)
	if err != nil {
		return nil, storeErr(s.log, "list product transactions", err, nil, nil)
	}
	return entries, nil
}

// AddReasonType rejects reasons that match an existing one exactly; the match
// is case-sensitive.
func (s *ledgerService) AddReasonType(ctx context.Context, reason string) (*model.ReasonType, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, invalid("Reason", "required")
	}

	_, err := s.reasons.FindByReason(ctx, reason)
	if err == nil {
		return nil, ErrReasonExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(s.log, "find reason", err, nil, nil)
	}

	rt := &model.ReasonType{Reason: reason}
	if err := s.reasons.Create(ctx, rt); err != nil {
		return nil, storeErr(s.log, "create reason", err, nil, ErrReasonExists)
	}
	return rt, nil
}

// DeleteReasonType refuses to remove a reason that any ledger entry points at.
func (s *ledgerService) DeleteReasonType(ctx context.Context, id uint) error {
	if _, err := s.reasons.FindByID(ctx, id); err != nil {
		return storeErr(s.log, "find reason", err, ErrReasonNotFound, nil)
	}

	n, err := s.entries.CountByReason(ctx, id)
	if err != nil {
		return storeErr(s.log, "count reason usage", err, nil, nil)
	}
	if n > 0 {
		return ErrReasonInUse
	}

	if err := s.reasons.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrReasonInUse
		}
		return storeErr(s.log, "delete reason", err, ErrReasonNotFound, nil)
	}
	return nil
}

func (s *ledgerService) GetReasonTypes(ctx context.Context) ([]model.ReasonType, error) {
	reasons, err := s.reasons.FindAll(ctx)
	if err != nil {
		return nil, storeErr(s.log, "list reasons", err, nil, nil)
	}
	return reasons, nil
}

func (s *ledgerService) ResolveReasonID(ctx context.Context, reason string) (uint, error) {
	rt, err := s.reasons.FindByReason(ctx, reason)
	if err != nil {
		return 0, storeErr(s.log, "find reason", err, ErrReasonNotFound, nil)
	}
	return rt.ID, nil
}

func (s *ledgerService) ResolveReasonText(ctx context.Context, id uint) (string, error) {
	rt, err := s.reasons.FindByID(ctx, id)
	if err != nil {
		return "", storeErr(s.log, "find reason", err, ErrReasonNotFound, nil)
	}
	return rt.Reason, nil
}
