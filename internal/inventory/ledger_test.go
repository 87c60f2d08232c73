package inventory

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"depo-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.StockEntry{}, &models.Dispatch{}, &models.DispatchItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock, minStock float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Unit: "adet", Stock: stock, MinStock: minStock}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRegisterEntryIncrementsStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 10, 2)

	entry, err := RegisterEntry(db, p.ID, 5, day("2025-12-09"), "Tedarikçi teslimatı")
	if err != nil {
		t.Fatalf("register entry: %v", err)
	}
	if entry.Quantity != 5 || entry.ProductID != p.ID || entry.Reason != "Tedarikçi teslimatı" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	var got models.Product
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Stock != 15 {
		t.Fatalf("expected stock 15 got %v", got.Stock)
	}

	var count int64
	db.Model(&models.StockEntry{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 entry row got %d", count)
	}
}

func TestRegisterEntryRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 10, 2)

	for _, qty := range []float64{0, -3} {
		if _, err := RegisterEntry(db, p.ID, qty, day("2025-12-09"), ""); !errors.Is(err, ErrValidation) {
			t.Fatalf("quantity %v: expected validation error got %v", qty, err)
		}
	}

	var got models.Product
	db.First(&got, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock changed: %v", got.Stock)
	}
	var count int64
	db.Model(&models.StockEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no entry rows got %d", count)
	}
}

func TestRegisterEntryUnknownProduct(t *testing.T) {
	db := setupTestDB(t, t.Name())

	if _, err := RegisterEntry(db, 99, 5, day("2025-12-09"), ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found got %v", err)
	}
	var count int64
	db.Model(&models.StockEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no entry rows got %d", count)
	}
}

func TestRegisterDispatchDecrementsStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p1 := seedProduct(t, db, "Un", 10, 2)
	p2 := seedProduct(t, db, "Şeker", 20, 5)

	lines := []DispatchLine{
		{ProductID: p1.ID, Quantity: 4},
		{ProductID: p2.ID, Quantity: 7},
	}
	dispatch, err := RegisterDispatch(db, "Acme", "SP-001", day("2025-12-09"), lines)
	if err != nil {
		t.Fatalf("register dispatch: %v", err)
	}
	if dispatch.OrderNumber != "SP-001" || dispatch.Client != "Acme" {
		t.Fatalf("unexpected dispatch: %+v", dispatch)
	}

	var got1, got2 models.Product
	db.First(&got1, p1.ID)
	db.First(&got2, p2.ID)
	if got1.Stock != 6 || got2.Stock != 13 {
		t.Fatalf("expected stocks 6/13 got %v/%v", got1.Stock, got2.Stock)
	}

	var items []models.DispatchItem
	if err := db.Where("dispatch_id = ?", dispatch.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 dispatch lines got %d", len(items))
	}
}

func TestRegisterDispatchDuplicateOrderNumber(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 10, 2)

	lines := []DispatchLine{{ProductID: p.ID, Quantity: 3}}
	if _, err := RegisterDispatch(db, "Acme", "SP-001", day("2025-12-09"), lines); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}

	// Aynı sipariş numarasıyla ikinci çağrı reddedilmeli ve durum değişmemeli
	if _, err := RegisterDispatch(db, "Globex", "SP-001", day("2025-12-10"), lines); !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("expected duplicate order error got %v", err)
	}

	var got models.Product
	db.First(&got, p.ID)
	if got.Stock != 7 {
		t.Fatalf("expected stock 7 got %v", got.Stock)
	}
	var dispatchCount, itemCount int64
	db.Model(&models.Dispatch{}).Count(&dispatchCount)
	db.Model(&models.DispatchItem{}).Count(&itemCount)
	if dispatchCount != 1 || itemCount != 1 {
		t.Fatalf("expected 1 dispatch / 1 line got %d/%d", dispatchCount, itemCount)
	}
}

func TestRegisterDispatchValidationOrder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 10, 2)
	lines := []DispatchLine{{ProductID: p.ID, Quantity: 3}}

	cases := []struct {
		name        string
		client      string
		orderNumber string
		lines       []DispatchLine
	}{
		{"empty client", "", "SP-001", lines},
		{"empty order number", "Acme", "", lines},
		{"no lines", "Acme", "SP-001", nil},
		{"zero quantity", "Acme", "SP-001", []DispatchLine{{ProductID: p.ID, Quantity: 0}}},
	}
	for _, tc := range cases {
		if _, err := RegisterDispatch(db, tc.client, tc.orderNumber, day("2025-12-09"), tc.lines); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected validation error got %v", tc.name, err)
		}
	}

	var got models.Product
	db.First(&got, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock changed: %v", got.Stock)
	}
}

func TestRegisterDispatchInsufficientStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 5, 2)

	// Tek satırda fazla miktar
	lines := []DispatchLine{{ProductID: p.ID, Quantity: 6}}
	if _, err := RegisterDispatch(db, "Acme", "SP-001", day("2025-12-09"), lines); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock got %v", err)
	}

	// Aynı ürün iki satırda, toplam stok aşılıyor
	lines = []DispatchLine{
		{ProductID: p.ID, Quantity: 3},
		{ProductID: p.ID, Quantity: 3},
	}
	if _, err := RegisterDispatch(db, "Acme", "SP-002", day("2025-12-09"), lines); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected cumulative insufficient stock got %v", err)
	}

	var got models.Product
	db.First(&got, p.ID)
	if got.Stock != 5 {
		t.Fatalf("stock changed: %v", got.Stock)
	}
	var count int64
	db.Model(&models.Dispatch{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no dispatches got %d", count)
	}
}

func TestLowStockProducts(t *testing.T) {
	db := setupTestDB(t, t.Name())
	a := seedProduct(t, db, "A", 5, 10)
	seedProduct(t, db, "B", 20, 5)
	c := seedProduct(t, db, "C", 3, 3) // eşiğe eşit olan da düşük stok sayılır

	low, err := LowStockProducts(db)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected 2 low-stock products got %d", len(low))
	}
	if low[0].ID != a.ID || low[1].ID != c.ID {
		t.Fatalf("unexpected order: %v, %v", low[0].Name, low[1].Name)
	}
}

func TestSummarizeByClient(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 100, 2)

	mustDispatch := func(client, order string, qty float64) {
		t.Helper()
		if _, err := RegisterDispatch(db, client, order, day("2025-12-09"), []DispatchLine{{ProductID: p.ID, Quantity: qty}}); err != nil {
			t.Fatalf("dispatch %s: %v", order, err)
		}
	}
	mustDispatch("Acme", "SP-001", 5)
	mustDispatch("Acme", "SP-002", 3)
	mustDispatch("acme", "SP-003", 2) // büyük/küçük harf normalize edilmez, ayrı müşteri

	summary, err := SummarizeByClient(db)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	acme := summary["Acme"]
	if acme.TotalUnits != 8 || acme.DistinctOrderCount != 2 {
		t.Fatalf("Acme: expected 8 units / 2 orders got %v/%d", acme.TotalUnits, acme.DistinctOrderCount)
	}
	lower := summary["acme"]
	if lower.TotalUnits != 2 || lower.DistinctOrderCount != 1 {
		t.Fatalf("acme: expected 2 units / 1 order got %v/%d", lower.TotalUnits, lower.DistinctOrderCount)
	}
}

func TestFilterDispatches(t *testing.T) {
	db := setupTestDB(t, t.Name())
	p := seedProduct(t, db, "Un", 100, 2)

	mustDispatch := func(client, order, date string) {
		t.Helper()
		if _, err := RegisterDispatch(db, client, order, day(date), []DispatchLine{{ProductID: p.ID, Quantity: 1}}); err != nil {
			t.Fatalf("dispatch %s: %v", order, err)
		}
	}
	mustDispatch("Acme Corp", "SP-001", "2025-01-05")
	mustDispatch("Globex", "SP-002", "2025-01-20")
	mustDispatch("Initech", "ACME-9", "2025-02-01")

	// Substring hem müşteri adında hem sipariş numarasında aranır, harf duyarsız
	got, err := FilterDispatches(db, "acme", nil, nil)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches got %d", len(got))
	}

	// Tarih aralığı sınırlar dahil
	from, to := day("2025-01-05"), day("2025-01-20")
	got, err = FilterDispatches(db, "", &from, &to)
	if err != nil {
		t.Fatalf("filter by date: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 in range got %d", len(got))
	}
	for _, d := range got {
		if d.OrderNumber == "ACME-9" {
			t.Fatalf("ACME-9 outside range returned")
		}
	}
}
