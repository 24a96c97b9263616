package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
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
		&models.BarberShop{},
		&models.Service{},
		&models.OpeningHours{},
		&models.TimeOff{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.GalleryImage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}

	// Backstop for the check-then-insert race: two BOOKED appointments can
	// never overlap on the same date, even if both writers pass the
	// application-level conflict check. Violations surface as SQLSTATE 23P01.
	// duplicate_object means the constraint already exists (every boot after
	// the first); anything else is a real failure.
	err = db.Exec(`
        DO $$
        BEGIN
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_booked_overlap
            EXCLUDE USING gist (
                appointment_date WITH =,
                tsrange(
                    appointment_date::timestamp + start_time::interval,
                    appointment_date::timestamp + end_time::interval
                ) WITH &&
            )
            WHERE (status = 'BOOKED');
        EXCEPTION
            WHEN duplicate_object THEN NULL;
        END
        $$
    `).Error
	if err != nil {
		log.Fatalf("failed to create booking overlap constraint: %v", err)
	}

	return db
}
