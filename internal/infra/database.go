package infra

import (
	"fmt"

	"dentalis/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Also used by
// integration tests against a scratch database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.ObraSocial{},
		&model.MetodoPago{},
		&model.Arancel{},
		&model.Paciente{},
		&model.HistoriaClinica{},
		&model.DienteCara{},
		&model.Tratamiento{},
		&model.Cobro{},
		&model.Turno{},
		&model.SesionCaja{},
		&model.MovimientoCaja{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open register session per user, enforced at the DB level
		// in addition to the service-layer check.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sesiones_caja_usuario_abierta') THEN
		    CREATE UNIQUE INDEX idx_sesiones_caja_usuario_abierta
		        ON sesion_cajas (usuario_id)
		        WHERE estado = 'abierta';
		  END IF;
		END $$`,
		// Partial index for the reminder cron query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_turnos_pending_recordatorio') THEN
		    CREATE INDEX idx_turnos_pending_recordatorio
		        ON turnos (fecha)
		        WHERE estado IN ('programado', 'confirmado') AND recordatorio_enviado = false;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
