package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'reservation_type') THEN
			CREATE TYPE reservation_type AS ENUM ('TRAINING', 'AUXILIARY', 'VEHICLE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'reservation_status') THEN
			CREATE TYPE reservation_status AS ENUM ('PENDING', 'APPROVED', 'REJECTED', 'CANCELLED', 'COMPLETED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_status') THEN
			CREATE TYPE driver_status AS ENUM ('ACTIVE', 'INACTIVE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('AVAILABLE', 'IN_SERVICE', 'MAINTENANCE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'dispatch_status') THEN
			CREATE TYPE dispatch_status AS ENUM ('ASSIGNED', 'DONE', 'CANCELLED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS drivers (
		driver_id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(32),
		status driver_status NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id BIGSERIAL PRIMARY KEY,
		plate_no VARCHAR(32) NOT NULL UNIQUE,
		model VARCHAR(64),
		capacity INTEGER,
		status vehicle_status NOT NULL DEFAULT 'AVAILABLE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS reservations (
		reservation_id BIGSERIAL PRIMARY KEY,
		reservation_type reservation_type NOT NULL,
		user_id UUID NOT NULL,
		org_id BIGINT,
		facility_id BIGINT,
		vehicle_id BIGINT REFERENCES vehicles(vehicle_id) ON DELETE SET NULL,
		title TEXT,
		participants INTEGER NOT NULL DEFAULT 1 CHECK (participants > 0),
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		status reservation_status NOT NULL DEFAULT 'PENDING',
		departure TEXT,
		destination TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_time < end_time)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_type_status ON reservations (reservation_type, status);`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_id ON reservations (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_start_time ON reservations (start_time);`,
	`CREATE TABLE IF NOT EXISTS dispatches (
		dispatch_id BIGSERIAL PRIMARY KEY,
		reservation_id BIGINT NOT NULL REFERENCES reservations(reservation_id) ON DELETE CASCADE,
		driver_id BIGINT REFERENCES drivers(driver_id) ON DELETE SET NULL,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(vehicle_id),
		status dispatch_status NOT NULL DEFAULT 'ASSIGNED',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_dispatches_reservation_id ON dispatches (reservation_id);`,
	`CREATE INDEX IF NOT EXISTS idx_dispatches_driver_id ON dispatches (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_dispatches_vehicle_id ON dispatches (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_dispatches_status ON dispatches (status);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_reservation_active_dispatch
		ON dispatches (reservation_id)
		WHERE status = 'ASSIGNED';`,
}

func runMigrations(database *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
