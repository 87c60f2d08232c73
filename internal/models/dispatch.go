package models

import "time"

// Dispatch: Müşteriye giden sevkiyat (birden fazla ürün içerebilir).
// OrderNumber tüm tablo genelinde tekildir.
type Dispatch struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"index;not null"` // sevkiyat tarihi
	Client      string    `gorm:"size:100;not null"`
	OrderNumber string    `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []DispatchItem `gorm:"foreignKey:DispatchID;constraint:OnDelete:CASCADE"`
}

// DispatchItem: Sevkiyat içindeki her ürün satırı.
type DispatchItem struct {
	ID          uint `gorm:"primaryKey"`
	DispatchID  uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index;not null"`
	Product     Product
	ProductName string  `gorm:"size:100;not null"` // yazım anındaki ürün adı; ürün tablosu toptan değişse de tarihçe okunur kalır
	Quantity    float64 `gorm:"not null"`          // miktar
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
