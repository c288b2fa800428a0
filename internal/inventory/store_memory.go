package inventory

import (
	"context"
	"sync"
)

// MemStore keeps products in insertion order. A single lock serializes id
// assignment with the append, so ids stay unique under concurrent requests.
type MemStore struct {
	mu    sync.RWMutex
	items []Product
}

func NewMemStore(seed ...Product) *MemStore {
	s := &MemStore{items: make([]Product, 0, len(seed))}
	for _, p := range seed {
		s.items = append(s.items, p.clone())
	}
	return s
}

// NewStore returns a MemStore holding the demo record every fresh process
// starts with.
func NewStore() *MemStore {
	barcode := "0000"
	return NewMemStore(Product{
		ID:          1,
		Name:        "Example Product",
		Brand:       "Sample Brand",
		Quantity:    5,
		Price:       3.99,
		Barcode:     &barcode,
		Ingredients: "Sample ingredients",
	})
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.clone())
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	return s.items[i].clone(), nil
}

func (s *MemStore) Insert(ctx context.Context, f Fields) (Product, error) {
	if !f.hasRequired() {
		return Product{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:          s.nextID(),
		Name:        *f.Name,
		Brand:       orDefault(f.Brand),
		Quantity:    *f.Quantity,
		Price:       *f.Price,
		Barcode:     copyString(f.Barcode),
		Ingredients: orDefault(f.Ingredients),
	}
	s.items = append(s.items, p)
	return p.clone(), nil
}

func (s *MemStore) Patch(ctx context.Context, id int, f Fields) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	f.apply(&s.items[i])
	return s.items[i].clone(), nil
}

func (s *MemStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// nextID is max(id)+1, so deleting the newest record frees its id for reuse.
func (s *MemStore) nextID() int {
	highest := 0
	for _, p := range s.items {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

func (s *MemStore) indexOf(id int) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
