// Package fixtures provides an in-memory implementation of the repository
// interfaces for service and handler tests. Do snapshots the store and
// rolls back on error, matching the atomicity of the real unit of work.
package fixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
)

// Store is an in-memory database shared by the fake repositories.
type Store struct {
	mu           sync.Mutex
	Transactions map[uuid.UUID]domain.Transaction
	Projects     map[uuid.UUID]domain.Project
	Categories   map[uuid.UUID]domain.Category
	Allocations  map[uuid.UUID][]domain.Allocation // keyed by transaction id
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Transactions: make(map[uuid.UUID]domain.Transaction),
		Projects:     make(map[uuid.UUID]domain.Project),
		Categories:   make(map[uuid.UUID]domain.Category),
		Allocations:  make(map[uuid.UUID][]domain.Allocation),
	}
}

// AddTransaction stores t and returns it.
func (s *Store) AddTransaction(t domain.Transaction) domain.Transaction {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.Transactions[t.ID] = t
	return t
}

// AddProject stores p and returns it.
func (s *Store) AddProject(p domain.Project) domain.Project {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
		p.Active = true
	}
	s.Projects[p.ID] = p
	return p
}

// AddCategory stores c and returns it.
func (s *Store) AddCategory(c domain.Category) domain.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.Categories[c.ID] = c
	return c
}

// SetAllocations replaces the stored allocations of a transaction.
func (s *Store) SetAllocations(txID uuid.UUID, allocations []domain.Allocation) {
	s.Allocations[txID] = allocations
}

// UoW returns a repository.UnitOfWork backed by this store.
func (s *Store) UoW() repository.UnitOfWork {
	return &uow{store: s}
}

func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.Transactions {
		snap.Transactions[k] = v
	}
	for k, v := range s.Projects {
		snap.Projects[k] = v
	}
	for k, v := range s.Categories {
		snap.Categories[k] = v
	}
	for k, v := range s.Allocations {
		snap.Allocations[k] = append([]domain.Allocation(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.Transactions = snap.Transactions
	s.Projects = snap.Projects
	s.Categories = snap.Categories
	s.Allocations = snap.Allocations
}

type uow struct {
	store *Store
}

func (u *uow) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.snapshot()
	if err := fn(u); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *uow) Transactions() repository.TransactionRepository { return &txRepo{u.store} }
func (u *uow) Projects() repository.ProjectRepository         { return &projectRepo{u.store} }
func (u *uow) Categories() repository.CategoryRepository      { return &categoryRepo{u.store} }
func (u *uow) Allocations() repository.AllocationRepository   { return &allocationRepo{u.store} }

type txRepo struct{ store *Store }

func (r *txRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := r.store.Transactions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	return &t, nil
}

func (r *txRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return r.Get(ctx, id)
}

func (r *txRepo) ListInPeriod(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range r.store.Transactions {
		if t.Excluded {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *txRepo) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	t, ok := r.store.Transactions[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	if update.CategoryID != nil {
		t.CategoryID = update.CategoryID
	}
	if update.ProjectID != nil {
		t.ProjectID = update.ProjectID
	}
	if update.Excluded != nil {
		t.Excluded = *update.Excluded
	}
	r.store.Transactions[id] = t
	return nil
}

type projectRepo struct{ store *Store }

func (r *projectRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := r.store.Projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	return &p, nil
}

func (r *projectRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Project, error) {
	out := make(map[uuid.UUID]domain.Project, len(ids))
	for _, id := range ids {
		if p, ok := r.store.Projects[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *projectRepo) List(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.store.Projects {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.store.Projects[p.ID] = *p
	return nil
}

func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) error {
	p, ok := r.store.Projects[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.ClientName != nil {
		p.ClientName = *update.ClientName
	}
	if update.Budget != nil {
		p.Budget = update.Budget
	}
	if update.ContractValue != nil {
		p.ContractValue = update.ContractValue
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Active != nil {
		p.Active = *update.Active
	}
	r.store.Projects[id] = p
	return nil
}

type categoryRepo struct{ store *Store }

func (r *categoryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := r.store.Categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	return &c, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error) {
	out := make(map[uuid.UUID]domain.Category, len(ids))
	for _, id := range ids {
		if c, ok := r.store.Categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *categoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.store.Categories {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.store.Categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.Categories[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	delete(r.store.Categories, id)
	return nil
}

type allocationRepo struct{ store *Store }

func (r *allocationRepo) ListForTransaction(ctx context.Context, txID uuid.UUID) ([]domain.Allocation, error) {
	return append([]domain.Allocation(nil), r.store.Allocations[txID]...), nil
}

func (r *allocationRepo) ListForTransactions(
	ctx context.Context,
	txIDs []uuid.UUID,
) (map[uuid.UUID][]domain.Allocation, error) {
	out := make(map[uuid.UUID][]domain.Allocation)
	for _, id := range txIDs {
		if allocs, ok := r.store.Allocations[id]; ok && len(allocs) > 0 {
			out[id] = append([]domain.Allocation(nil), allocs...)
		}
	}
	return out, nil
}

func (r *allocationRepo) Replace(
	ctx context.Context,
	txID uuid.UUID,
	allocations []domain.Allocation,
) error {
	r.store.Allocations[txID] = append([]domain.Allocation(nil), allocations...)
	return nil
}

func (r *allocationRepo) DeleteForTransaction(ctx context.Context, txID uuid.UUID) (int64, error) {
	count := int64(len(r.store.Allocations[txID]))
	delete(r.store.Allocations, txID)
	return count, nil
}
