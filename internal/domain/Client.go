package domain

import (
	"time"
)

type ScheduleFrequency string

const (
	ScheduleFrequencyNone     ScheduleFrequency = "none"
	ScheduleFrequencyWeekly   ScheduleFrequency = "weekly"
	ScheduleFrequencyBiweekly ScheduleFrequency = "biweekly"
	ScheduleFrequencyMonthly  ScheduleFrequency = "monthly"
)

// Schedule descreve a cadência de captura de um cliente. É um value object:
// em edições o schedule é substituído por inteiro, nunca alterado campo a campo.
type Schedule struct {
	Frequency  ScheduleFrequency `json:"frequency" validate:"required,oneof=none weekly biweekly monthly"`
	DayOfWeek  int               `json:"day_of_week" validate:"gte=0,lte=6"`
	DayOfMonth int               `json:"day_of_month" validate:"gte=0,lte=28"`
	Hour       int               `json:"hour" validate:"gte=0,lte=23"`
}

// IsActive indica se o schedule dispara execuções agendadas
func (s Schedule) IsActive() bool {
	return s.Frequency != "" && s.Frequency != ScheduleFrequencyNone
}

// DefaultSchedule é aplicado a clientes recém conectados via QuickBooks
func DefaultSchedule() Schedule {
	return Schedule{
		Frequency:  ScheduleFrequencyMonthly,
		DayOfMonth: 1,
		Hour:       9,
	}
}

type Client struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	RealmID     *string    `json:"realm_id"`
	Name        string     `json:"name"`
	ClientEmail string     `json:"client_email"`
	Tags        []string   `json:"tags"`
	Schedule    Schedule   `json:"schedule"`
	NextRunAt   *time.Time `json:"next_run_at"`
	Source      string     `json:"source"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsConnected indica se o cliente possui uma empresa QuickBooks vinculada.
// Clientes não conectados são excluídos das execuções.
func (c *Client) IsConnected() bool {
	return c.RealmID != nil && *c.RealmID != ""
}

type UpdateClientRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name"`
	ClientEmail *string   `json:"client_email" validate:"omitempty,email"`
	Tags        []string  `json:"tags"`
	Schedule    *Schedule `json:"schedule"`
}
