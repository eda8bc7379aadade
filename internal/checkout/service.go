package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"wemint/internal/catalog"
)

const (
	DefaultDelay    = 2 * time.Second
	completeTimeout = 5 * time.Second

	MethodCard      = "card"
	MethodPromptPay = "promptpay"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrBadPaymentMethod = errors.New("unsupported payment method")
)

// ProductStore is the slice of the catalog the checkout needs.
type ProductStore interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
	RecordSale(ctx context.Context, id int64) (catalog.Product, error)
}

type Request struct {
	ProductID     int64
	Email         string
	PaymentMethod string
}

type Receipt struct {
	ID            string    `json:"id"`
	ProductID     int64     `json:"product_id"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	PaymentMethod string    `json:"payment_method"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Service simulates payment: after a fixed delay the sale is recorded on the
// product. Payments are never charged anywhere.
type Service struct {
	store   ProductStore
	delay   time.Duration
	log     *zap.Logger
	metrics *metrics

	pending sync.WaitGroup
}

func NewService(store ProductStore, delay time.Duration, log *zap.Logger, reg prometheus.Registerer) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if delay < 0 {
		delay = 0
	}
	return &Service{
		store:   store,
		delay:   delay,
		log:     log,
		metrics: newMetrics(reg),
	}
}

// Purchase starts a simulated payment for one active product and waits for it.
// Once started the completion always fires, even if ctx ends first; in that
// case ctx's error is returned while the sale is still recorded.
func (s *Service) Purchase(ctx context.Context, req Request) (Receipt, error) {
	method, err := paymentMethod(req.PaymentMethod)
	if err != nil {
		return Receipt{}, err
	}

	p, err := s.store.Get(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && !p.Active()) {
		return Receipt{}, ErrProductNotFound
	}
	if err != nil {
		return Receipt{}, err
	}

	rc := Receipt{
		ID:            "r_" + uuid.NewString(),
		ProductID:     p.ID,
		Title:         p.Title,
		Amount:        p.Price,
		Email:         strings.TrimSpace(req.Email),
		PaymentMethod: method,
	}

	done := make(chan error, 1)
	s.pending.Add(1)
	time.AfterFunc(s.delay, func() {
		defer s.pending.Done()
		done <- s.complete(rc)
	})

	select {
	case err := <-done:
		if err != nil {
			return Receipt{}, err
		}
		rc.CompletedAt = time.Now().UTC()
		return rc, nil
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
}

// Wait blocks until every scheduled completion has fired.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) complete(rc Receipt) error {
	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()

	p, err := s.store.RecordSale(ctx, rc.ProductID)
	if err != nil {
		s.metrics.failed()
		if errors.Is(err, catalog.ErrNotFound) {
			s.log.Warn("product vanished before checkout completed",
				zap.String("receipt_id", rc.ID), zap.Int64("product_id", rc.ProductID))
			return ErrProductNotFound
		}
		s.log.Error("record sale failed",
			zap.Error(err), zap.String("receipt_id", rc.ID), zap.Int64("product_id", rc.ProductID))
		return err
	}

	s.metrics.completed(rc.Amount)
	s.log.Info("checkout completed",
		zap.String("receipt_id", rc.ID),
		zap.Int64("product_id", p.ID),
		zap.Int64("sales_count", p.SalesCount),
		zap.String("payment_method", rc.PaymentMethod),
	)
	return nil
}

func paymentMethod(m string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "", MethodCard:
		return MethodCard, nil
	case MethodPromptPay:
		return MethodPromptPay, nil
	}
	return "", ErrBadPaymentMethod
}
