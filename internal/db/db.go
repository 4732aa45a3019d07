package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/config"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
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
		&models.BloodBank{},
		&models.User{},
		&models.PublishedSlot{},
		&models.Booking{},
		&models.EligibilityQuestionnaire{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Backstop no banco para a regra de um agendamento ativo por doador:
	// o lock por slot serializa dentro do processo, o índice parcial cobre
	// múltiplas réplicas.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_booking_per_user
        ON bookings (user_id)
        WHERE status IN ('pending', 'confirmed')
    `)

	db.Exec(`
        UPDATE blood_banks
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
