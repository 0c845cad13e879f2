package domain

import (
	"time"

	"github.com/pkg/errors"
)

// PeriodPreset identifica um atalho de período do dashboard.
type PeriodPreset string

const (
	PresetToday      PeriodPreset = "today"
	PresetLast7Days  PeriodPreset = "last_7_days"
	PresetLast30Days PeriodPreset = "last_30_days"
	PresetThisMonth  PeriodPreset = "this_month"
	PresetLastMonth  PeriodPreset = "last_month"
	PresetThisYear   PeriodPreset = "this_year"
	PresetCustom     PeriodPreset = "custom"
)

// ErrInvalidPeriod indica um intervalo customizado com início posterior ao fim.
var ErrInvalidPeriod = errors.New("a data de início não pode ser posterior à data de fim")

// Period é o intervalo de datas ativo do dashboard, com granularidade de dia:
// Start e End são sempre meia-noite local. O intervalo é inclusivo nas duas
// pontas quando comparado por dia-calendário, então Start == End cobre o dia
// inteiro.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains informa se o instante cai dentro do período, comparando por
// dia-calendário.
func (p Period) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(p.Start) && !day.After(p.End)
}

// ResolvePreset materializa um preset em um par {start, end} relativo a now.
// Presets desconhecidos caem no comportamento de PresetToday.
func ResolvePreset(preset PeriodPreset, now time.Time) Period {
	today := truncateToDay(now)

	switch preset {
	case PresetLast7Days:
		return Period{Start: today.AddDate(0, 0, -6), End: today}
	case PresetLast30Days:
		return Period{Start: today.AddDate(0, 0, -29), End: today}
	case PresetThisMonth:
		return Period{Start: firstDayOfMonth(now), End: today}
	case PresetLastMonth:
		// O dia zero do mês corrente normaliza para o último dia do mês anterior
		lastOfPrevious := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
		return Period{Start: firstDayOfMonth(lastOfPrevious), End: lastOfPrevious}
	case PresetThisYear:
		return Period{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: today}
	case PresetToday:
		return Period{Start: today, End: today}
	}

	return Period{Start: today, End: today}
}

// NewCustomPeriod monta um período customizado informado pelo usuário,
// truncado para meia-noite. Intervalos invertidos são rejeitados.
func NewCustomPeriod(start, end time.Time) (Period, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if s.After(e) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: s, End: e}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
