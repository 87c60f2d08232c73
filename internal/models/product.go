package models

import "time"

// Product: Depodaki ürün. Name bilerek unique değil (eski sistemde aynı isimli
// iki ürün kaydedilebiliyordu); kimlik ID üzerinden yürür, isim görüntü alanıdır.
type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;index"`
	Unit      string  `gorm:"size:20;not null"` // kg, adet, koli vs.
	Category  string  `gorm:"size:50"`          // Opsiyonel ürün tipi
	Stock     float64 `gorm:"not null;default:0"`
	MinStock  float64 `gorm:"not null;default:0"` // Minimum stok eşiği
	CreatedAt time.Time
	UpdatedAt time.Time
}
