package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SettingModel is the GORM model for the settings table
// One row per setting, the value column holds a JSON array
type SettingModel struct {
	Var   string `gorm:"column:var;primaryKey;size:191"`
	Value string `gorm:"column:value;type:text"`
}

// TableName specifies the table name for GORM
// By default, GORM would pluralize to "setting_models"
func (SettingModel) TableName() string {
	return "settings"
}

// MySQLStore implements Store interface using MySQL with GORM
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore creates a new MySQL store using GORM and migrates the settings table
//
// Parameters:
//   - dsn: Data Source Name (connection string)
//     Format: user:password@tcp(host:port)/dbname?parseTime=true
//
// Returns:
//   - *MySQLStore: pointer to the created store
//   - error: any error that occurred during connection or migration
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	config := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true, // every operation is a single statement
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	if err := db.AutoMigrate(&SettingModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate settings table: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// Get implements the Store interface
// SELECT * FROM settings WHERE var = ? LIMIT 1
func (s *MySQLStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	var record SettingModel

	result := s.db.WithContext(ctx).Where("var = ?", key).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("database query failed: %w", result.Error)
	}

	var values []string
	if err := json.Unmarshal([]byte(record.Value), &values); err != nil {
		return nil, false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	if values == nil {
		return nil, false, nil
	}

	return values, true, nil
}

// Set implements the Store interface as an upsert
// INSERT ... ON DUPLICATE KEY UPDATE value = VALUES(value)
func (s *MySQLStore) Set(ctx context.Context, key string, values []string) error {
	data, err := json.Marshal(cloneValues(values))
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	record := SettingModel{Var: key, Value: string(data)}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record)
	if result.Error != nil {
		return fmt.Errorf("database upsert failed: %w", result.Error)
	}

	return nil
}

// Unset implements the Store interface
func (s *MySQLStore) Unset(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("var = ?", key).Delete(&SettingModel{})
	if result.Error != nil {
		return fmt.Errorf("database delete failed: %w", result.Error)
	}
	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
