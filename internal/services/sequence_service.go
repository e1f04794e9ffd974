package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	intdb "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/db"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/domain"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/repositories"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/utils"
)

// Serial prefixes. TRIP- appears in legacy rows only and is never
// generated.
var sequencePrefixes = map[string]string{
	domain.SeqReceipt: "DRT",
	domain.SeqTrip:    "TRP",
	domain.SeqPayment: "ADV",
}

// SequenceService issues date-scoped serial numbers. The counter advance
// itself is atomic in the repo; this layer adds naming and formatting.
type SequenceService struct {
	CounterRepo repositories.CounterRepo
	DB          *sql.DB
}

func (s SequenceService) counters() repositories.CounterRepo {
	if s.CounterRepo.DB != nil {
		return s.CounterRepo
	}
	if s.DB != nil {
		return repositories.CounterRepo{DB: s.DB}
	}
	return repositories.CounterRepo{DB: intconfig.DB}
}

// Next advances the named sequence for today's date and returns the serial
// and its formatted number.
func (s SequenceService) Next(name string, today time.Time) (int64, string, error) {
	if _, ok := sequencePrefixes[name]; !ok {
		return 0, "", domain.ValidationError{Field: "sequence", Msg: "unknown sequence " + name}
	}
	serial, err := s.counters().Next(name, utils.FormatDate(today))
	if err != nil {
		return 0, "", err
	}
	return serial, FormatSerial(name, today, serial), nil
}

// NextIn is Next running on the caller's executor, used when the number
// must commit with the rows it identifies.
func (s SequenceService) NextIn(ex intdb.Execer, name string, today time.Time) (int64, string, error) {
	if _, ok := sequencePrefixes[name]; !ok {
		return 0, "", domain.ValidationError{Field: "sequence", Msg: "unknown sequence " + name}
	}
	serial, err := s.counters().NextIn(ex, name, utils.FormatDate(today))
	if err != nil {
		return 0, "", err
	}
	return serial, FormatSerial(name, today, serial), nil
}

// FormatSerial renders PREFIX-DDMMYYYY-NNN with the serial zero-padded to
// three digits.
func FormatSerial(name string, day time.Time, serial int64) string {
	return fmt.Sprintf("%s-%s-%03d", sequencePrefixes[name], utils.SerialDate(day), serial)
}
