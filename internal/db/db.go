package db

import (
	"log"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/config"
	"github.com/salonsuite/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Branch{},
		&models.BusinessHours{},
		&models.Holiday{},
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.LeaveRequest{},
		&models.RescheduleRequest{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// One booking per (staff, date, time) slot while non-cancelled.
	// Cancelling frees the slot, every other status reserves it.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
        ON appointments (staff_id, date, time)
        WHERE status <> 'cancelled'
    `)

	db.Exec(`
        UPDATE branches
        SET timezone = 'America/New_York'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
