package routes

import (
	"context"
	"sort"
	"sync"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
)

// memStore is an in-memory record store shared by the fake repositories.
type memStore struct {
	mu      sync.Mutex
	users   map[int64]models.User
	tenants map[int64]models.Tenant
	lots    map[int64]models.ParkingLot
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]models.User),
		tenants: make(map[int64]models.Tenant),
		lots:    make(map[int64]models.ParkingLot),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) repos() *repositories.Repositories {
	return &repositories.Repositories{
		Users:       memUsers{s},
		Tenants:     memTenants{s},
		ParkingLots: memLots{s},
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = r.s.id()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUsers) AssignTenant(_ context.Context, userID, tenantID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.TenantID = &tenantID
	r.s.users[userID] = u
	return nil
}

func (r memUsers) WithTx(repositories.Transaction) repositories.UserRepository { return r }

type memTenants struct{ s *memStore }

func (r memTenants) Create(_ context.Context, tenant *models.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tenants {
		if t.Name == tenant.Name {
			return repositories.ErrDuplicate
		}
	}
	tenant.ID = r.s.id()
	r.s.tenants[tenant.ID] = *tenant
	return nil
}

func (r memTenants) GetByName(_ context.Context, name string) (*models.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tenants {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memTenants) WithTx(repositories.Transaction) repositories.TenantRepository { return r }

type memLots struct{ s *memStore }

func (r memLots) Create(_ context.Context, lot *models.ParkingLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot.ID = r.s.id()
	r.s.lots[lot.ID] = *lot
	return nil
}

func (r memLots) ListByTenant(_ context.Context, tenantID int64) ([]*models.ParkingLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.ParkingLot{}
	for _, l := range r.s.lots {
		if l.TenantID == tenantID {
			lot := l
			out = append(out, &lot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memLots) GetByIDForTenant(_ context.Context, id, tenantID int64) (*models.ParkingLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok || l.TenantID != tenantID {
		return nil, repositories.ErrNotFound
	}
	return &l, nil
}

func (r memLots) Update(_ context.Context, lot *models.ParkingLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[lot.ID]
	if !ok || l.TenantID != lot.TenantID {
		return repositories.ErrNotFound
	}
	r.s.lots[lot.ID] = *lot
	return nil
}

func (r memLots) Delete(_ context.Context, id, tenantID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[id]
	if !ok || l.TenantID != tenantID {
		return repositories.ErrNotFound
	}
	delete(r.s.lots, id)
	return nil
}

func (r memLots) WithTx(repositories.Transaction) repositories.ParkingLotRepository { return r }

// memTxManager runs transactions without isolation; the store applies writes immediately.
type memTxManager struct{}

func (memTxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	return memTx{ctx: ctx}, nil
}

type memTx struct{ ctx context.Context }

func (memTx) Commit() error              { return nil }
func (memTx) Rollback() error            { return nil }
func (t memTx) Context() context.Context { return t.ctx }
