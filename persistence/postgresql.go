// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/escaperoom/models"
)

// PostgreSQL 不经ORM的裸SQL实现，部署环境不便引入GORM时可用
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS room_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(16) UNIQUE NOT NULL,
            host_id VARCHAR(16) NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	return err
}

func (p *PostgreSQL) SaveRoomRecord(record *models.RoomRecord) error {
	_, err := p.db.Exec(`
        INSERT INTO room_records (room_id, host_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (room_id) DO NOTHING
    `, record.RoomID, record.HostID, record.CreatedAt)
	return err
}

func (p *PostgreSQL) LoadRoomRecord(roomID string) (*models.RoomRecord, error) {
	var record models.RoomRecord
	err := p.db.QueryRow(`
        SELECT room_id, host_id, created_at FROM room_records WHERE room_id = $1
    `, roomID).Scan(&record.RoomID, &record.HostID, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (p *PostgreSQL) ListRoomRecords(limit int) ([]*models.RoomRecord, error) {
	rows, err := p.db.Query(`
        SELECT room_id, host_id, created_at FROM room_records
        ORDER BY created_at DESC LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.RoomRecord
	for rows.Next() {
		var record models.RoomRecord
		if err := rows.Scan(&record.RoomID, &record.HostID, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
