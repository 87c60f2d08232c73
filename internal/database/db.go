package database

import (
	"log"
	"os"
	"path/filepath"

	"depo-backend/internal/config"
	"depo-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init veritabanını açar ve tabloları oluşturur. DATABASE_DSN tanımlıysa
// Postgres, değilse tek kullanıcılı kurulum için yerel SQLite dosyası kullanılır.
// İlk çalıştırmada üç tablo da boş şemalarıyla oluşur.
func Init(cfg *config.Config) {
	var err error

	if cfg.DatabaseDSN != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); mkErr != nil {
			log.Fatalf("Veri klasörü oluşturulamadı: %v", mkErr)
		}
		DB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Product{},
		&models.StockEntry{},
		&models.Dispatch{},
		&models.DispatchItem{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
