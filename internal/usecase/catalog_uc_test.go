package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"guestcart/internal/adapters/repo/postgres"
	"guestcart/internal/domain"
	"guestcart/internal/usecase"
)

func TestListForGuestAnnotation(t *testing.T) {
	db := newTestDB(t)
	carts := newCartUC(t, db)
	catalog := &usecase.CatalogUC{Products: postgres.NewProductRepo(db), Carts: postgres.NewCartRepo(db)}
	ctx := context.Background()

	p1 := seedProduct(t, db, "Mouse", "10.00")
	p2 := seedProduct(t, db, "Keyboard", "5.00")
	p3 := seedProduct(t, db, "Hub", "39.00")

	// guest without a cart sees in_cart=false everywhere
	views, err := catalog.ListForGuest(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListForGuest: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("views = %d, want 3", len(views))
	}
	for _, v := range views {
		if v.InCart {
			t.Errorf("product %d flagged in_cart with no cart", v.ID)
		}
	}

	_ = carts.AddItem(ctx, "g1", p1.ID, 1)
	_ = carts.AddItem(ctx, "g1", p3.ID, 2)

	views, err = catalog.ListForGuest(ctx, "g1")
	if err != nil {
		t.Fatalf("ListForGuest: %v", err)
	}
	want := map[uint]bool{p1.ID: true, p2.ID: false, p3.ID: true}
	for _, v := range views {
		if v.InCart != want[v.ID] {
			t.Errorf("product %d in_cart = %v, want %v", v.ID, v.InCart, want[v.ID])
		}
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	db := newTestDB(t)
	catalog := &usecase.CatalogUC{Products: postgres.NewProductRepo(db), Carts: postgres.NewCartRepo(db)}
	ctx := context.Background()

	if err := catalog.Create(ctx, &domain.Product{Name: "  "}); err == nil {
		t.Error("blank name accepted")
	}
	if err := catalog.Create(ctx, &domain.Product{Name: "Mouse", Price: decimal.RequireFromString("-1")}); err == nil {
		t.Error("negative price accepted")
	}
	if err := catalog.Create(ctx, &domain.Product{Name: "Mouse", Price: decimal.RequireFromString("9.99")}); err != nil {
		t.Errorf("valid product rejected: %v", err)
	}
}

func TestExportXLSX(t *testing.T) {
	db := newTestDB(t)
	catalog := &usecase.CatalogUC{Products: postgres.NewProductRepo(db), Carts: postgres.NewCartRepo(db)}
	ctx := context.Background()

	seedProduct(t, db, "Mouse", "10.00")
	seedProduct(t, db, "Keyboard", "5.50")

	var buf bytes.Buffer
	if err := catalog.ExportXLSX(ctx, &buf); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][1] != "Name" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Mouse" || rows[1][2] != "10.00" {
		t.Errorf("row 1 = %v", rows[1])
	}
}
