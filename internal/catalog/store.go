package catalog

import (
	"bytes"
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const DefaultSlotKey = "wemint_products"

var (
	ErrNotFound       = errors.New("product not found")
	ErrMalformedState = errors.New("malformed catalog state")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Slot is a single named durable value, only ever written as a whole.
type Slot interface {
	// Load returns ok=false when the slot has never been written.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
}

// Store owns the product collection. Every mutation rewrites the whole slot.
type Store struct {
	mu   sync.Mutex
	slot Slot
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.slot.Ping(ctx)
}

// Initialize writes seed into the slot unless it already holds a value,
// including an empty collection. It reports whether seeding happened.
func (s *Store) Initialize(ctx context.Context, seed []Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.slot.Load(ctx)
	if err != nil {
		return false, errors.Wrap(err, "load slot")
	}
	if ok {
		return false, nil
	}
	if err := s.save(ctx, seed); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) List(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) Get(ctx context.Context, id int64) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	if i := indexOf(products, id); i >= 0 {
		return products[i], nil
	}
	return Product{}, ErrNotFound
}

func (s *Store) Create(ctx context.Context, np NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	var maxID int64
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	p := np.build(maxID + 1)
	products = append(products, p)
	if err := s.save(ctx, products); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id int64, u ProductUpdate) (Product, error) {
	return s.mutate(ctx, id, u.apply)
}

// ToggleStatus flips a product between active and draft.
func (s *Store) ToggleStatus(ctx context.Context, id int64) (Product, error) {
	return s.mutate(ctx, id, func(p Product) Product {
		if p.Status == StatusActive {
			p.Status = StatusDraft
		} else {
			p.Status = StatusActive
		}
		return p
	})
}

// RecordSale bumps the sale counter by one. It is the only write path for SalesCount.
func (s *Store) RecordSale(ctx context.Context, id int64) (Product, error) {
	return s.mutate(ctx, id, func(p Product) Product {
		p.SalesCount++
		return p
	})
}

// Delete removes the product with id. A missing id leaves the slot untouched.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(products, id)
	if i < 0 {
		return nil
	}
	products = append(products[:i:i], products[i+1:]...)
	return s.save(ctx, products)
}

func (s *Store) Active(ctx context.Context) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, p := range products {
		st.TotalSalesCount += p.SalesCount
		st.TotalRevenue += p.Price * float64(p.SalesCount)
	}
	return st, nil
}

func (s *Store) mutate(ctx context.Context, id int64, fn func(Product) Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	i := indexOf(products, id)
	if i < 0 {
		return Product{}, ErrNotFound
	}

	updated := fn(products[i])
	updated.ID = id
	products[i] = updated

	if err := s.save(ctx, products); err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (s *Store) load(ctx context.Context) ([]Product, error) {
	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load slot")
	}
	if !ok {
		return []Product{}, nil
	}
	return DecodeProducts(data)
}

func (s *Store) save(ctx context.Context, products []Product) error {
	data, err := EncodeProducts(products)
	if err != nil {
		return err
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return errors.Wrap(err, "save slot")
	}
	return nil
}

func indexOf(products []Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// EncodeProducts renders the slot value. A nil collection encodes as an empty array.
func EncodeProducts(products []Product) ([]byte, error) {
	if products == nil {
		products = []Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, errors.Wrap(err, "encode products")
	}
	return data, nil
}

// DecodeProducts parses a slot value. Records are carried forward as decoded;
// anything that is not an array of product objects with positive ids is
// ErrMalformedState.
func DecodeProducts(data []byte) ([]Product, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.Wrap(ErrMalformedState, "decode slot: not an array")
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrapf(ErrMalformedState, "decode slot: %v", err)
	}
	for i, p := range products {
		if p.ID <= 0 {
			return nil, errors.Wrapf(ErrMalformedState, "decode slot: record %d has no id", i)
		}
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
