// Package fakes provides in-memory collaborators for command and scheduler
// tests. The fake unit of work serializes transactions with a single mutex,
// which approximates the row locking the real store relies on.
package fakes

import (
	"context"
	"sync"
	"time"

	"petshop-loyalty/internal/domain/campaign"
	"petshop-loyalty/internal/domain/delivery"
	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/domain/subscription"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
)

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type UoW struct {
	mu sync.Mutex

	Accounts      map[int64]int
	Subscriptions map[uuid.UUID]*subscription.Subscription
	Deliveries    []*delivery.Delivery
	Locations     []delivery.Location
	Registrations map[string]map[int64]time.Time
	Windows       []*loyalty.PromotionWindow
	Jobs          []Job
	Addresses     map[int64]string
	Products      map[uuid.UUID]string

	// FailSubscriptions makes FindByIDForUpdate fail for the given ids.
	FailSubscriptions map[uuid.UUID]error
	// FailCredits makes Credit fail for the given customers.
	FailCredits map[int64]error

	occurrences map[string]struct{}
}

func NewUoW() *UoW {
	return &UoW{
		Accounts:          make(map[int64]int),
		Subscriptions:     make(map[uuid.UUID]*subscription.Subscription),
		Registrations:     make(map[string]map[int64]time.Time),
		Addresses:         make(map[int64]string),
		Products:          make(map[uuid.UUID]string),
		FailSubscriptions: make(map[uuid.UUID]error),
		FailCredits:       make(map[int64]error),
		occurrences:       make(map[string]struct{}),
	}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &fakeTx{uow: u})
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, nil)
}

func (u *UoW) CommandReads() shared.CommandReads {
	return &fakeReads{uow: u, locked: false}
}

// Balance reads an account balance outside any transaction.
func (u *UoW) Balance(customerID int64) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Accounts[customerID]
}

// NotificationRepo exposes the job store for wiring a notification sink.
func (u *UoW) NotificationRepo() shared.NotificationRepository {
	return &fakeNotifications{uow: u}
}

// AccountRepo exposes the account store for commands that run single
// statements through WithDB.
func (u *UoW) AccountRepo() shared.AccountRepository {
	return &fakeAccounts{uow: u}
}

func (u *UoW) DeliveryCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.Deliveries)
}

func (u *UoW) Subscription(id uuid.UUID) *subscription.Subscription {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.Subscriptions[id]
}

type fakeTx struct {
	uow *UoW
}

func (t *fakeTx) DB() db.DBTX                            { return nil }
func (t *fakeTx) Accounts() shared.AccountRepository     { return &fakeAccounts{uow: t.uow} }
func (t *fakeTx) Subscriptions() shared.SubscriptionRepository {
	return &fakeSubscriptions{uow: t.uow}
}
func (t *fakeTx) Deliveries() shared.DeliveryRepository { return &fakeDeliveries{uow: t.uow} }
func (t *fakeTx) Campaigns() shared.CampaignRepository  { return &fakeCampaigns{uow: t.uow} }
func (t *fakeTx) Promotions() shared.PromotionRepository {
	return &fakePromotions{uow: t.uow}
}
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotifications{uow: t.uow}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{uow: t.uow, locked: true} }

type fakeAccounts struct {
	uow *UoW
}

func (r *fakeAccounts) Credit(_ context.Context, _ db.DBTX, customerID int64, points int) (int, error) {
	if err := r.uow.FailCredits[customerID]; err != nil {
		return 0, infra.WrapRepoErr("credit failed", err, infra.KindDBFailure)
	}
	r.uow.Accounts[customerID] += points
	return r.uow.Accounts[customerID], nil
}

func (r *fakeAccounts) Debit(_ context.Context, _ db.DBTX, customerID int64, points int) (int, error) {
	balance, ok := r.uow.Accounts[customerID]
	if !ok || balance < points {
		return 0, infra.WrapRepoErr("insufficient points", nil, infra.KindConflict)
	}
	r.uow.Accounts[customerID] = balance - points
	return r.uow.Accounts[customerID], nil
}

type fakeSubscriptions struct {
	uow *UoW
}

func (r *fakeSubscriptions) Create(_ context.Context, _ db.DBTX, sub *subscription.Subscription) error {
	r.uow.Subscriptions[sub.ID()] = cloneSubscription(sub)
	return nil
}

func (r *fakeSubscriptions) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*subscription.Subscription, error) {
	if err, ok := r.uow.FailSubscriptions[id]; ok {
		return nil, err
	}
	sub, ok := r.uow.Subscriptions[id]
	if !ok {
		return nil, infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return cloneSubscription(sub), nil
}

func (r *fakeSubscriptions) Update(_ context.Context, _ db.DBTX, sub *subscription.Subscription) error {
	if _, ok := r.uow.Subscriptions[sub.ID()]; !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	r.uow.Subscriptions[sub.ID()] = cloneSubscription(sub)
	return nil
}

func cloneSubscription(sub *subscription.Subscription) *subscription.Subscription {
	return subscription.ReconstructSubscription(
		sub.ID(),
		sub.CustomerID(),
		sub.ProductID(),
		sub.Frequency(),
		sub.NextDeliveryDate(),
		sub.Status(),
		sub.CreatedAt(),
		sub.UpdatedAt(),
	)
}

type fakeDeliveries struct {
	uow *UoW
}

func (r *fakeDeliveries) Create(_ context.Context, _ db.DBTX, d *delivery.Delivery) error {
	r.uow.Deliveries = append(r.uow.Deliveries, d)
	return nil
}

func (r *fakeDeliveries) CreateFromOccurrence(_ context.Context, _ db.DBTX, d *delivery.Delivery) (bool, error) {
	occ := d.Occurrence()
	key := occ.SubscriptionID.String() + "/" + occ.Date.UTC().Format("2006-01-02")
	if _, exists := r.uow.occurrences[key]; exists {
		return false, nil
	}
	r.uow.occurrences[key] = struct{}{}
	r.uow.Deliveries = append(r.uow.Deliveries, d)
	return true, nil
}

func (r *fakeDeliveries) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status delivery.Status) error {
	for i, d := range r.uow.Deliveries {
		if d.ID() == id {
			d.UpdateStatus(status)
			r.uow.Deliveries[i] = d
			return nil
		}
	}
	return infra.WrapRepoErr("delivery not found", nil, infra.KindNotFound)
}

func (r *fakeDeliveries) RecordLocation(_ context.Context, _ db.DBTX, loc delivery.Location) error {
	for _, d := range r.uow.Deliveries {
		if d.ID() == loc.DeliveryID {
			r.uow.Locations = append(r.uow.Locations, loc)
			return nil
		}
	}
	return infra.WrapRepoErr("delivery not found", nil, infra.KindNotFound)
}

type fakeCampaigns struct {
	uow *UoW
}

func (r *fakeCampaigns) RegisterBatch(_ context.Context, _ db.DBTX, regs []campaign.Registration) ([]int64, error) {
	var registered []int64
	for _, reg := range regs {
		members, ok := r.uow.Registrations[reg.CampaignName]
		if !ok {
			members = make(map[int64]time.Time)
			r.uow.Registrations[reg.CampaignName] = members
		}
		if _, exists := members[reg.CustomerID]; exists {
			continue
		}
		members[reg.CustomerID] = reg.RegisteredAt
		registered = append(registered, reg.CustomerID)
	}
	return registered, nil
}

type fakePromotions struct {
	uow *UoW
}

func (r *fakePromotions) Create(_ context.Context, _ db.DBTX, w *loyalty.PromotionWindow) error {
	for _, existing := range r.uow.Windows {
		if existing.Name() == w.Name() {
			return infra.WrapRepoErr("duplicate promotion name", nil, infra.KindDuplicateKey)
		}
	}
	r.uow.Windows = append(r.uow.Windows, w)
	return nil
}

type fakeNotifications struct {
	uow *UoW
}

func (r *fakeNotifications) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.uow.Jobs = append(r.uow.Jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type fakeReads struct {
	uow    *UoW
	locked bool
}

func (r *fakeReads) lock() func() {
	if r.locked {
		return func() {}
	}
	r.uow.mu.Lock()
	return r.uow.mu.Unlock
}

func (r *fakeReads) ActivePromotionWindows(_ context.Context, at time.Time) ([]*loyalty.PromotionWindow, error) {
	defer r.lock()()
	var active []*loyalty.PromotionWindow
	for _, w := range r.uow.Windows {
		if w.Contains(at) {
			active = append(active, w)
		}
	}
	return active, nil
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	defer r.lock()()
	name, ok := r.uow.Products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return &shared.ProductSnapshot{ID: id, Name: name}, nil
}

func (r *fakeReads) CustomerAddress(_ context.Context, customerID int64) (string, error) {
	defer r.lock()()
	addr, ok := r.uow.Addresses[customerID]
	if !ok {
		return "", infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return addr, nil
}

func (r *fakeReads) DueSubscriptionIDs(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	defer r.lock()()
	var ids []uuid.UUID
	for id, sub := range r.uow.Subscriptions {
		if sub.IsDue(now) {
			ids = append(ids, id)
			if len(ids) == limit {
				break
			}
		}
	}
	return ids, nil
}
