package scheduling

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

var validate = validator.New()

// ScheduleConfigError indica uma combinação inválida de frequência, dia e
// hora em uma edição de schedule. É rejeitado na borda da API, antes de
// qualquer persistência.
type ScheduleConfigError struct {
	Err error
}

func (e *ScheduleConfigError) Error() string {
	return fmt.Sprintf("schedule inválido: %v", e.Err)
}

func (e *ScheduleConfigError) Unwrap() error {
	return e.Err
}

// Validate verifica os campos do schedule contra os intervalos permitidos.
// Para frequência mensal o dia do mês precisa estar entre 1 e 28: todo mês
// admite esses dias, dispensando tratamento de fim de mês.
func Validate(schedule domain.Schedule) error {
	if err := validate.Struct(schedule); err != nil {
		return &ScheduleConfigError{Err: err}
	}

	if schedule.Frequency == domain.ScheduleFrequencyMonthly && schedule.DayOfMonth < 1 {
		return &ScheduleConfigError{Err: fmt.Errorf("day_of_month deve estar entre 1 e 28")}
	}

	return nil
}

// NextRun calcula o próximo disparo estritamente posterior a from, ou nil
// quando a frequência é none
func NextRun(schedule domain.Schedule, from time.Time) *time.Time {
	switch schedule.Frequency {
	case domain.ScheduleFrequencyWeekly:
		next := nextWeekly(schedule, from, 7)
		return &next
	case domain.ScheduleFrequencyBiweekly:
		next := nextWeekly(schedule, from, 14)
		return &next
	case domain.ScheduleFrequencyMonthly:
		next := nextMonthly(schedule, from)
		return &next
	default:
		return nil
	}
}

// nextWeekly encontra a próxima ocorrência do dia da semana na hora
// configurada. Se o instante calculado não for estritamente futuro, avança
// pelo período completo (7 ou 14 dias).
func nextWeekly(schedule domain.Schedule, from time.Time, periodDays int) time.Time {
	daysAhead := (schedule.DayOfWeek - int(from.Weekday()) + 7) % 7

	candidate := time.Date(from.Year(), from.Month(), from.Day(), schedule.Hour, 0, 0, 0, from.Location()).
		AddDate(0, 0, daysAhead)

	if !candidate.After(from) {
		candidate = candidate.AddDate(0, 0, periodDays)
	}

	return candidate
}

func nextMonthly(schedule domain.Schedule, from time.Time) time.Time {
	dayOfMonth := schedule.DayOfMonth
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}

	candidate := time.Date(from.Year(), from.Month(), dayOfMonth, schedule.Hour, 0, 0, 0, from.Location())

	if !candidate.After(from) {
		candidate = candidate.AddDate(0, 1, 0)
	}

	return candidate
}

// IsDue decide se uma execução agendada deve acontecer agora. Um cliente
// com schedule ativo e sem próximo disparo registrado está sempre devido:
// é o caso do primeiro agendamento.
func IsDue(schedule domain.Schedule, nextRunAt *time.Time, now time.Time) bool {
	if !schedule.IsActive() {
		return false
	}

	if nextRunAt == nil {
		return true
	}

	return !nextRunAt.After(now)
}
