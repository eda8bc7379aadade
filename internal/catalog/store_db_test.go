package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"wemint/internal/catalog"
)

const (
	selectSlot = `SELECT value\s+FROM catalog_slots\s+WHERE key = \$1`
	upsertSlot = `INSERT INTO catalog_slots`
)

func newPostgresSlot(t *testing.T) (*catalog.PostgresSlot, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("expectations: %v", err)
		}
		_ = db.Close()
	})

	return catalog.NewPostgresSlot(db, "k"), mock
}

func TestPostgresSlot_NoRowIsAbsent(t *testing.T) {
	slot, mock := newPostgresSlot(t)

	mock.ExpectQuery(selectSlot).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	data, ok, err := slot.Load(context.Background())
	if err != nil || ok || data != nil {
		t.Fatalf("load: data=%q ok=%v err=%v", data, ok, err)
	}
}

func TestPostgresSlot_LoadReturnsStoredValue(t *testing.T) {
	slot, mock := newPostgresSlot(t)

	mock.ExpectQuery(selectSlot).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":7,"title":"Kept"}]`)))

	products, err := catalog.NewStore(slot).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 || products[0].ID != 7 || products[0].Title != "Kept" {
		t.Fatalf("products=%#v", products)
	}
}

func TestPostgresSlot_InitializeUpsertsWhenAbsent(t *testing.T) {
	slot, mock := newPostgresSlot(t)

	mock.ExpectQuery(selectSlot).WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(upsertSlot).WithArgs("k", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	seeded, err := catalog.NewStore(slot).Initialize(context.Background(), catalog.DefaultProducts())
	if err != nil || !seeded {
		t.Fatalf("initialize: seeded=%v err=%v", seeded, err)
	}
}

func TestPostgresSlot_QueryErrorIsNotAbsent(t *testing.T) {
	slot, mock := newPostgresSlot(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery(selectSlot).WithArgs("k").WillReturnError(boom)

	if _, ok, err := slot.Load(context.Background()); !errors.Is(err, boom) || ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
}
