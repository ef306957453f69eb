// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/escaperoom/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&RoomRecordModel{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// RoomRecordModel 房间元数据表
type RoomRecordModel struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    string `gorm:"uniqueIndex;not null"`
	HostID    string `gorm:"not null"`
	CreatedAt time.Time
}

func (p *GormPostgreSQL) SaveRoomRecord(record *models.RoomRecord) error {
	model := RoomRecordModel{
		RoomID:    record.RoomID,
		HostID:    record.HostID,
		CreatedAt: record.CreatedAt,
	}
	return p.db.Create(&model).Error
}

func (p *GormPostgreSQL) LoadRoomRecord(roomID string) (*models.RoomRecord, error) {
	var model RoomRecordModel
	err := p.db.Where("room_id = ?", roomID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return &models.RoomRecord{
		RoomID:    model.RoomID,
		HostID:    model.HostID,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (p *GormPostgreSQL) ListRoomRecords(limit int) ([]*models.RoomRecord, error) {
	var rows []RoomRecordModel
	if err := p.db.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*models.RoomRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, &models.RoomRecord{
			RoomID:    row.RoomID,
			HostID:    row.HostID,
			CreatedAt: row.CreatedAt,
		})
	}
	return records, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
