package repository

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/barberflow/agenda-api/internal/models"
)

// O recheck de conflito precisa travar as linhas lidas sem agregação:
// "SELECT count(*) ... FOR UPDATE" é rejeitado pelo Postgres (0A000) e
// derrubaria toda tentativa de booking.
func TestLockConflictsBuildsRowLockWithoutAggregate(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("failed to open dry-run db: %v", err)
	}

	ap := &models.Appointment{
		BarberID:    10,
		Date:        "2200-05-20",
		StartMin:    600,
		DurationMin: 60,
	}

	var rows []models.Appointment
	stmt := lockConflicts(db, ap).Find(&rows).Statement

	sql := strings.ToLower(stmt.SQL.String())

	if !strings.Contains(sql, "for update") {
		t.Fatalf("expected row lock in query, got: %s", sql)
	}
	if strings.Contains(sql, "count(") {
		t.Fatalf("lock query must not aggregate, got: %s", sql)
	}
	if !strings.Contains(sql, "start_min <") || !strings.Contains(sql, "start_min + duration_min >") {
		t.Fatalf("expected half-open overlap predicate, got: %s", sql)
	}
}
