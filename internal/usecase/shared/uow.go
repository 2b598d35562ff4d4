package shared

import (
	"context"
	"time"

	"petshop-loyalty/internal/domain/campaign"
	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/domain/subscription"
	"petshop-loyalty/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on transient
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single-statement operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Accounts() AccountRepository
	Subscriptions() SubscriptionRepository
	Deliveries() DeliveryRepository
	Campaigns() CampaignRepository
	Promotions() PromotionRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write side's snapshot reads. They intentionally stay
// minimal so commands never depend on read-model view types.
type CommandReads interface {
	ActivePromotionWindows(ctx context.Context, at time.Time) ([]*loyalty.PromotionWindow, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CustomerAddress(ctx context.Context, customerID int64) (string, error)
	DueSubscriptionIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// AccountRepository mutates loyalty balances. Credit and Debit are single
// conditional statements: concurrent callers never observe an intermediate
// read-modify-write state.
type AccountRepository interface {
	// Credit adds points to the account, creating it at zero when absent.
	// Returns the balance after the credit.
	Credit(ctx context.Context, db db.DBTX, customerID int64, points int) (int, error)
	// Debit subtracts points only when the balance covers them. An absent
	// account or a short balance yields a CONFLICT-kind repository error.
	Debit(ctx context.Context, db db.DBTX, customerID int64, points int) (int, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, db db.DBTX, sub *subscription.Subscription) error
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction.
	FindByIDForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (*subscription.Subscription, error)
	Update(ctx context.Context, db db.DBTX, sub *subscription.Subscription) error
}

type DeliveryRepository interface {
	Create(ctx context.Context, db db.DBTX, d *delivery.Delivery) error
	// CreateFromOccurrence inserts a scheduler-materialized delivery keyed on
	// its (subscription, occurrence date) pair. Reports false without error
	// when that occurrence was already materialized.
	CreateFromOccurrence(ctx context.Context, db db.DBTX, d *delivery.Delivery) (bool, error)
	UpdateStatus(ctx context.Context, db db.DBTX, id uuid.UUID, status delivery.Status) error
	RecordLocation(ctx context.Context, db db.DBTX, loc delivery.Location) error
}

type CampaignRepository interface {
	// RegisterBatch inserts registrations, skipping customers already holding
	// one for the campaign. Returns the newly registered customer ids.
	RegisterBatch(ctx context.Context, db db.DBTX, regs []campaign.Registration) ([]int64, error)
}

type PromotionRepository interface {
	Create(ctx context.Context, db db.DBTX, w *loyalty.PromotionWindow) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, db db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
