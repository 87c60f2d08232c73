package models

type Role string

const (
	RoleOperator Role = "operator" // şifresiz giriş, sadece günlük işlemler
	RoleOwner    Role = "owner"    // paylaşılan şifre ile; içe/dışa aktarma ve ürün düzenleme
)
