package repositories

import (
	"database/sql"
	"fmt"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	intdb "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/db"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain/models"
)

// CounterRepo owns the keyed sequence_counters rows. The advance is a
// single statement so concurrent callers serialize on the row lock and
// never observe the same serial.
type CounterRepo struct {
	DB *sql.DB
}

func (r CounterRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// nextStmt both creates the row on first use and advances it afterwards.
// LAST_INSERT_ID(expr) makes the driver report the advanced value through
// Result.LastInsertId, and IF(...) resets the serial to 1 whenever the
// stored date differs from the requested one.
const nextStmt = `INSERT INTO sequence_counters (name, counter_date, value)
VALUES (?, ?, LAST_INSERT_ID(1))
ON DUPLICATE KEY UPDATE
	value = LAST_INSERT_ID(IF(counter_date = VALUES(counter_date), value + 1, 1)),
	counter_date = VALUES(counter_date)`

// Next advances the named sequence for the given date (YYYY-MM-DD) and
// returns the new serial.
func (r CounterRepo) Next(name, date string) (int64, error) {
	return r.NextIn(r.db(), name, date)
}

// NextIn runs the advance on the given executor, typically a transaction
// when numbering must commit with the rows it identifies.
func (r CounterRepo) NextIn(ex intdb.Execer, name, date string) (int64, error) {
	if name == "" || date == "" {
		return 0, fmt.Errorf("sequence name and date are required")
	}
	res, err := ex.Exec(nextStmt, name, date)
	if err != nil {
		return 0, err
	}
	serial, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if serial <= 0 {
		return 0, fmt.Errorf("sequence %s returned non-positive serial %d", name, serial)
	}
	return serial, nil
}

// Get reads the current counter row without advancing it.
func (r CounterRepo) Get(name string) (models.SequenceCounter, error) {
	var c models.SequenceCounter
	err := r.db().QueryRow(`
		SELECT name, DATE_FORMAT(counter_date, '%Y-%m-%d'), value
		FROM sequence_counters
		WHERE name = ?
		LIMIT 1
	`, name).Scan(&c.Name, &c.CounterDate, &c.Value)
	if err != nil {
		return models.SequenceCounter{}, err
	}
	return c, nil
}
