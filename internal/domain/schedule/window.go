package schedule

import "time"

// Window é o expediente resolvido de um dia, em minutos desde meia-noite.
type Window struct {
	Start int
	End   int
}

// DayConfig espelha uma linha de expediente semanal do barbeiro.
type DayConfig struct {
	Weekday    int // 0=domingo .. 6=sábado
	Active     bool
	StartTime  string // "HH:MM"
	EndTime    string
	LunchStart string
	LunchEnd   string
}

// Weekday devolve o dia da semana (0=domingo) de uma data "YYYY-MM-DD".
// Ancoramos o parse ao meio-dia: converter meia-noite para UTC pode cair
// no dia anterior e deslocar o weekday.
func Weekday(date string) int {
	t, err := time.Parse("2006-01-02T15:04:05", date+"T12:00:00")
	if err != nil {
		return 0
	}
	return int(t.Weekday())
}

// ResolveWindow determina o expediente do barbeiro para a data.
//
// A decisão é em três vias e precisa continuar assim:
//  1. há linha para o weekday → usa o expediente dela;
//  2. há configuração para OUTROS dias mas não este → fechado (nil), é folga;
//  3. não há configuração nenhuma → janela padrão 09:00–19:00.
//
// Colapsar os casos 2 e 3 quebraria a semântica de "dia de folga".
func ResolveWindow(days []DayConfig, date string) *Window {
	if len(days) == 0 {
		return &Window{Start: DefaultWindowStart, End: DefaultWindowEnd}
	}

	wd := Weekday(date)
	for _, d := range days {
		if d.Weekday != wd {
			continue
		}
		if !d.Active || d.StartTime == "" || d.EndTime == "" {
			return nil
		}
		return &Window{
			Start: ToMinutes(d.StartTime),
			End:   ToMinutes(d.EndTime),
		}
	}

	return nil
}
