package app

import (
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"guestcart/internal/adapters/httpserver"
	"guestcart/internal/adapters/repo/postgres"
	"guestcart/internal/domain"
	"guestcart/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	CartUC    *usecase.CartUC
	CatalogUC *usecase.CatalogUC
}

func NewApp(db *gorm.DB) (*App, error) {
	cartRepo := postgres.NewCartRepo(db)
	prodRepo := postgres.NewProductRepo(db)

	app := &App{DB: db}
	app.CartUC = &usecase.CartUC{Carts: cartRepo, Products: prodRepo, Merge: domain.MergeAdd}
	app.CatalogUC = &usecase.CatalogUC{Products: prodRepo, Carts: cartRepo}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CartUC, a.CatalogUC)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Cart{}, &domain.LineItem{},
	); err != nil {
		return err
	}

	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		seedProducts(a.DB)
	}
	return nil
}

func seedProducts(db *gorm.DB) {
	prods := []domain.Product{
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("24.99")},
		{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("89.50")},
		{Name: "USB-C Hub", Price: decimal.RequireFromString("39.00")},
		{Name: "Laptop Stand", Price: decimal.RequireFromString("31.25")},
		{Name: "Webcam Cover", Price: decimal.RequireFromString("4.99")},
		{Name: "Desk Mat", Price: decimal.RequireFromString("18.75")},
	}
	for _, p := range prods {
		db.Create(&p)
	}
}
