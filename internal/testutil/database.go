package testutil

import (
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"comanda/internal/domain"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// at localhost:3306 with a database named 'comanda_test'; the test is skipped
// when it is not reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	dsn := "root:@tcp(localhost:3306)/comanda_test?charset=utf8mb4&parseTime=true&loc=Local"

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting underlying connection pool: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables migrates the schema used by the integration tests.
func SetupTestTables(t *testing.T, db *gorm.DB) {
	err := db.AutoMigrate(
		&domain.Comercial{},
		&domain.Employee{},
		&domain.Table{},
		&domain.MenuItem{},
		&domain.Order{},
		&domain.OrderDetail{},
	)
	if err != nil {
		t.Fatalf("migrating test tables: %v", err)
	}
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	if db == nil {
		return
	}

	tables := []string{"orderDetails", "orders", "menuItems", "mesas", "employees", "comercials"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM `" + table + "`").Error; err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
