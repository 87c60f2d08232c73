package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"depo-backend/internal/models"

	"gorm.io/gorm"
)

// Stok defteri hataları. Handler'lar bunları HTTP durum kodlarına çevirir.
var (
	ErrProductNotFound   = errors.New("ürün bulunamadı")
	ErrValidation        = errors.New("doğrulama hatası")
	ErrDuplicateOrder    = errors.New("bu sipariş numarası zaten kayıtlı")
	ErrInsufficientStock = errors.New("yetersiz stok")
)

// DispatchLine: Sevkiyat kaydı için bir ürün satırı girdisi.
type DispatchLine struct {
	ProductID uint
	Quantity  float64
}

// RegisterEntry stok girişini kaydeder: giriş satırı eklenir ve ürünün stok
// miktarı aynı transaction içinde artar. Miktar 0 veya negatifse hiçbir şey
// yazılmadan doğrulama hatası döner.
func RegisterEntry(db *gorm.DB, productID uint, quantity float64, date time.Time, reason string) (*models.StockEntry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity 0'dan büyük olmalı", ErrValidation)
	}

	var entry models.StockEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		entry = models.StockEntry{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			Date:        date,
			Reason:      reason,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		product.Stock += quantity
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RegisterDispatch sevkiyatı kaydeder. Ön koşullar sırayla kontrol edilir,
// ilk hata kazanır: müşteri boş olamaz, sipariş numarası boş olamaz, en az
// bir satır olmalı, sipariş numarası daha önce kullanılmamış olmalı. Sonra
// her satır için ürün varlığı, miktar ve stok yeterliliği doğrulanır.
// Tüm satırlar ve stok düşüşleri tek transaction içinde yazılır.
func RegisterDispatch(db *gorm.DB, client, orderNumber string, date time.Time, lines []DispatchLine) (*models.Dispatch, error) {
	if client == "" {
		return nil, fmt.Errorf("%w: client zorunlu", ErrValidation)
	}
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order_number zorunlu", ErrValidation)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: en az bir satır eklenmelidir", ErrValidation)
	}

	var dispatch models.Dispatch
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Dispatch{}).Where("order_number = ?", orderNumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateOrder
		}

		// Önce tüm satırları doğrula, sonra yaz. Aynı ürün birden fazla
		// satırda geçebileceği için stok kontrolü kümülatif yapılır.
		products := make(map[uint]*models.Product)
		required := make(map[uint]float64)
		for _, line := range lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: tüm satırlar için quantity 0'dan büyük olmalı", ErrValidation)
			}

			if _, ok := products[line.ProductID]; !ok {
				var product models.Product
				if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w (ID: %d)", ErrProductNotFound, line.ProductID)
					}
					return err
				}
				products[line.ProductID] = &product
			}

			required[line.ProductID] += line.Quantity
			if required[line.ProductID] > products[line.ProductID].Stock {
				return fmt.Errorf("%w: %s (mevcut: %v)", ErrInsufficientStock, products[line.ProductID].Name, products[line.ProductID].Stock)
			}
		}

		items := make([]models.DispatchItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.DispatchItem{
				ProductID:   line.ProductID,
				ProductName: products[line.ProductID].Name,
				Quantity:    line.Quantity,
			})
		}

		dispatch = models.Dispatch{
			Date:        date,
			Client:      client,
			OrderNumber: orderNumber,
			Items:       items,
		}
		if err := tx.Create(&dispatch).Error; err != nil {
			return err
		}

		for productID, qty := range required {
			product := products[productID]
			product.Stock -= qty
			if err := tx.Save(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dispatch, nil
}

// LowStockProducts stok miktarı minimum eşiğe eşit veya altında olan ürünleri
// ekleniş sırasıyla döndürür.
func LowStockProducts(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	if err := db.Where("stock <= min_stock").Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FilterDispatches sevkiyatları filtreler: query doluysa müşteri adı VEYA
// sipariş numarası üzerinde büyük/küçük harf duyarsız substring eşleşmesi,
// from ve to ikisi birden doluysa tarih aralığı (sınırlar dahil).
func FilterDispatches(db *gorm.DB, query string, from, to *time.Time) ([]models.Dispatch, error) {
	dbq := db.Model(&models.Dispatch{}).Preload("Items.Product")

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		dbq = dbq.Where("LOWER(client) LIKE ? OR LOWER(order_number) LIKE ?", pattern, pattern)
	}
	if from != nil && to != nil {
		dbq = dbq.Where("date >= ? AND date <= ?", *from, *to)
	}

	var dispatches []models.Dispatch
	if err := dbq.Order("date desc, created_at desc").Find(&dispatches).Error; err != nil {
		return nil, err
	}
	return dispatches, nil
}

// ClientSummary: Bir müşterinin sevkiyat özeti.
type ClientSummary struct {
	TotalUnits         float64 `json:"total_units"`
	DistinctOrderCount int     `json:"distinct_order_count"`
}

// SummarizeByClient sevkiyatları müşteri adına göre gruplar. Müşteri adı
// üzerinde normalizasyon yapılmaz; "Acme" ile "acme" ayrı müşteridir.
func SummarizeByClient(db *gorm.DB) (map[string]ClientSummary, error) {
	var dispatches []models.Dispatch
	if err := db.Preload("Items").Find(&dispatches).Error; err != nil {
		return nil, err
	}

	orders := make(map[string]map[string]bool)
	summary := make(map[string]ClientSummary)
	for _, d := range dispatches {
		s := summary[d.Client]
		for _, item := range d.Items {
			s.TotalUnits += item.Quantity
		}
		if orders[d.Client] == nil {
			orders[d.Client] = make(map[string]bool)
		}
		if !orders[d.Client][d.OrderNumber] {
			orders[d.Client][d.OrderNumber] = true
			s.DistinctOrderCount++
		}
		summary[d.Client] = s
	}
	return summary, nil
}
