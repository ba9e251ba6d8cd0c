package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initSchemaMigration = "000001_init_schema.up.sql"

func readMigration(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", name))
	require.NoError(t, err)
	return string(raw)
}

func TestTimetableForeignKeysCascade(t *testing.T) {
	schema := readMigration(t, initSchemaMigration)

	refs := map[string]string{
		"class_id":   "classes",
		"subject_id": "subjects",
		"teacher_id": "teachers",
		"period_id":  "periods",
	}
	for column, table := range refs {
		pattern := regexp.MustCompile(`(?i)` + column + `\s+BIGINT\s+NOT NULL\s+REFERENCES\s+` + table + `\s*\(id\)\s+ON DELETE CASCADE`)
		assert.Truef(t, pattern.MatchString(schema), "timetables.%s must cascade from %s", column, table)
	}
}

func TestTimetableSlotConstraints(t *testing.T) {
	schema := readMigration(t, initSchemaMigration)

	assert.Contains(t, schema, "CONSTRAINT timetables_class_slot_key UNIQUE (class_id, period_id, day_of_week)")
	assert.Contains(t, schema, "CONSTRAINT timetables_teacher_slot_key UNIQUE (teacher_id, period_id, day_of_week)")
}

// Dependent timetable rows go away through the foreign key cascade, so an
// entity delete is a single statement against its own table.
func TestEntityDeleteLeavesTimetablesToStorage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	ctx := context.Background()

	deletes := map[string]func() error{
		"classes":  func() error { return NewClassRepository(db).Delete(ctx, 1) },
		"subjects": func() error { return NewSubjectRepository(db).Delete(ctx, 2) },
		"teachers": func() error { return NewTeacherRepository(db).Delete(ctx, 3) },
		"periods":  func() error { return NewPeriodRepository(db).Delete(ctx, 4) },
	}
	for _, table := range []string{"classes", "subjects", "teachers", "periods"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table + " WHERE id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, deletes[table](), table)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
