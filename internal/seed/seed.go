// Package seed loads the default school roster: classes 1-5 with sections
// A1 and A2, the teaching staff and an eight-period day. Rows that already
// exist are left untouched, so Run can be repeated safely.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/pkg/database"
)

// DefaultMaxWeeklyHours is the capacity given to seeded teachers.
const DefaultMaxWeeklyHours = 30

var (
	grades   = []int{1, 2, 3, 4, 5}
	sections = []string{"A1", "A2"}

	teacherNames = []string{
		"Manisha", "Anitha", "Pushpa", "Venky", "Sravani",
		"Aruna", "Surekha", "Radhika", "Vani", "Ramanamma",
		"Vasundahra", "Venkateswaramma", "Santi", "Usha", "Nafeeza",
	}

	periods = []struct{ name, start, end string }{
		{"Period 1", "09:00", "09:50"},
		{"Period 2", "09:50", "10:40"},
		{"Period 3", "10:50", "11:40"},
		{"Period 4", "11:40", "12:30"},
		{"Period 5", "13:20", "14:05"},
		{"Period 6", "14:05", "14:50"},
		{"Period 7", "15:00", "15:45"},
		{"Period 8", "15:45", "16:30"},
	}
)

const (
	insertClassQuery = `INSERT INTO classes (name, grade, section, description)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO NOTHING`

	insertTeacherQuery = `INSERT INTO teachers (name, phone, specialization, max_weekly_hours)
SELECT $1, '', '', $2
WHERE NOT EXISTS (SELECT 1 FROM teachers WHERE name = $1)`

	insertPeriodQuery = `INSERT INTO periods (name, start_time, end_time)
SELECT $1, $2, $3
WHERE NOT EXISTS (SELECT 1 FROM periods WHERE name = $1 AND start_time = $2 AND end_time = $3)`
)

// Result counts the rows inserted by Run.
type Result struct {
	Classes  int
	Teachers int
	Periods  int
}

// Run inserts the missing default rows in a single transaction.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	err := database.WithTx(ctx, db, sql.LevelReadCommitted, func(tx *sqlx.Tx) error {
		for _, grade := range grades {
			for _, section := range sections {
				name := fmt.Sprintf("%d - %s", grade, section)
				description := fmt.Sprintf("Grade %d, Section %s", grade, section)
				n, err := insert(ctx, tx, insertClassQuery, name, fmt.Sprint(grade), section, description)
				if err != nil {
					return fmt.Errorf("seed class %s: %w", name, err)
				}
				res.Classes += n
			}
		}

		for _, name := range teacherNames {
			n, err := insert(ctx, tx, insertTeacherQuery, name, DefaultMaxWeeklyHours)
			if err != nil {
				return fmt.Errorf("seed teacher %s: %w", name, err)
			}
			res.Teachers += n
		}

		for _, p := range periods {
			n, err := insert(ctx, tx, insertPeriodQuery, p.name, p.start, p.end)
			if err != nil {
				return fmt.Errorf("seed period %s: %w", p.name, err)
			}
			res.Periods += n
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("seed complete",
		zap.Int("classes_added", res.Classes),
		zap.Int("teachers_added", res.Teachers),
		zap.Int("periods_added", res.Periods),
	)
	return res, nil
}

func insert(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (int, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
