package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DatabaseDSN       string // boşsa yerel SQLite dosyası kullanılır
	SQLitePath        string
	JWTSecret         string
	OwnerPassword     string // düz metin karşılaştırma (tek paylaşılan şifre)
	OwnerPasswordHash string // doluysa bcrypt karşılaştırma, OwnerPassword yok sayılır
	CORSOrigins       string
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce devam et
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/depo.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		OwnerPassword:     getEnv("OWNER_PASSWORD", "admin123"),
		OwnerPasswordHash: getEnv("OWNER_PASSWORD_HASH", ""),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.OwnerPassword == "admin123" && cfg.OwnerPasswordHash == "" {
		log.Println("[WARN] OWNER_PASSWORD varsayılan değer kullanılıyor, production için mutlaka kendi şifreni tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
