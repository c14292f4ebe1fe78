package testutils

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
)

// MemStore is an in-memory product and user store used by service tests. It
// implements ProductRepository, UserRepository and a non-atomic Transactor.
type MemStore struct {
	mu       sync.Mutex
	seq      int
	products map[string]*models.Product
	order    []string
	users    map[string]*models.User

	// AdjustStockErr, when set, makes the next AdjustStock calls fail.
	AdjustStockErr error
}

func NewMemStore() *MemStore {
	return &MemStore{
		products: map[string]*models.Product{},
		users:    map[string]*models.User{},
	}
}

func (s *MemStore) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Cart.Items == nil {
		user.Cart = models.NewCart()
	}
	s.users[user.ID] = cloneUser(&user)
}

// Product returns a snapshot of the stored product, or nil.
func (s *MemStore) Product(id string) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.products[id]; ok {
		return cloneProduct(p)
	}
	return nil
}

// User returns a snapshot of the stored user, or nil.
func (s *MemStore) User(id string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		return cloneUser(u)
	}
	return nil
}

func (s *MemStore) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	product.ID = fmt.Sprintf("p%03d", s.seq)
	product.CreatedAt = time.Unix(int64(s.seq), 0).UTC()
	product.UpdatedAt = product.CreatedAt
	if product.Pictures == nil {
		product.Pictures = []string{}
	}

	s.products[product.ID] = cloneProduct(product)
	s.order = append(s.order, product.ID)

	return nil
}

func (s *MemStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (s *MemStore) UpdateProduct(_ context.Context, id string, patch *models.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	patch.Apply(p)

	return nil
}

func (s *MemStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return nil
}

func (s *MemStore) ListProducts(_ context.Context) ([]*models.Product, error) {
	return s.filter(func(*models.Product) bool { return true }, 0), nil
}

func (s *MemStore) ListByCategory(_ context.Context, category string) ([]*models.Product, error) {
	return s.filter(func(p *models.Product) bool { return p.Category == category }, 0), nil
}

func (s *MemStore) ListSimilar(_ context.Context, category, excludeID string, limit int) ([]*models.Product, error) {
	return s.filter(func(p *models.Product) bool { return p.Category == category && p.ID != excludeID }, limit), nil
}

func (s *MemStore) SearchProducts(_ context.Context, key string) ([]*models.Product, error) {
	key = strings.ToLower(key)

	return s.filter(func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), key) ||
			strings.Contains(strings.ToLower(p.Description), key) ||
			strings.Contains(strings.ToLower(p.Category), key)
	}, 0), nil
}

func (s *MemStore) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AdjustStockErr != nil {
		return 0, s.AdjustStockErr
	}

	p, ok := s.products[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if p.Stocks+delta < 0 {
		return 0, repository.ErrStockConflict
	}
	p.Stocks += delta

	return p.Stocks, nil
}

func (s *MemStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemStore) UpdateCart(_ context.Context, id string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Cart = cart.Clone()

	return nil
}

func (s *MemStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *MemStore) Atomic() bool {
	return false
}

// filter returns matching products newest first.
func (s *MemStore) filter(match func(*models.Product) bool, limit int) []*models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Product{}
	for i := len(s.order) - 1; i >= 0; i-- {
		p := s.products[s.order[i]]
		if !match(p) {
			continue
		}
		result = append(result, cloneProduct(p))
		if limit > 0 && len(result) == limit {
			break
		}
	}

	return result
}

func cloneProduct(p *models.Product) *models.Product {
	c := *p
	c.Pictures = slices.Clone(p.Pictures)
	return &c
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Cart = u.Cart.Clone()
	return &c
}
