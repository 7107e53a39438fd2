package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"guestcart/internal/domain"
)

// CatalogUC reads the product catalog and annotates it per guest.
type CatalogUC struct {
	Products domain.ProductRepo
	Carts    domain.CartRepo
}

// ListForGuest returns every catalog product flagged with whether it already
// sits in the guest's cart. A guest without a cart gets in_cart=false across
// the board. Read only.
func (uc *CatalogUC) ListForGuest(ctx context.Context, guestID string) ([]domain.ProductView, error) {
	products, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}

	inCart := map[uint]struct{}{}
	cart, err := uc.Carts.FindByGuest(ctx, guestID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if cart != nil {
		for _, it := range cart.Items {
			inCart[it.ProductID] = struct{}{}
		}
	}

	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		_, ok := inCart[p.ID]
		views = append(views, domain.ProductView{Product: p, InCart: ok})
	}
	return views, nil
}

func (uc *CatalogUC) Create(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name empty")
	}
	if p.Price.IsNegative() {
		return errors.New("product price negative")
	}
	return uc.Products.Save(ctx, p)
}

// ExportXLSX writes the whole catalog as a spreadsheet.
func (uc *CatalogUC) ExportXLSX(ctx context.Context, w io.Writer) error {
	products, err := uc.Products.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &[]any{"ID", "Name", "Price"}); err != nil {
		return err
	}
	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{p.ID, p.Name, p.Price.StringFixed(2)}); err != nil {
			return err
		}
	}
	return f.Write(w)
}
