package database

import "gorm.io/gorm"

// Database хранилище поверх Postgres; реализует интерфейсы хранилищ сервисов
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
