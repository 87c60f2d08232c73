package models

import "time"

// StockEntry: Stok giriş kaydı. Sadece eklenir, güncellenmez; ürünün stok
// miktarı giriş kaydıyla aynı transaction içinde artar.
type StockEntry struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"index;not null"`
	Product     Product
	ProductName string    `gorm:"size:100;not null"` // yazım anındaki ürün adı; ürün tablosu toptan değişse de tarihçe okunur kalır
	Quantity    float64   `gorm:"not null"`
	Date        time.Time `gorm:"index;not null"` // giriş tarihi
	Reason      string    `gorm:"size:255"`       // Opsiyonel açıklama (ör: "Tedarikçi teslimatı")
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
