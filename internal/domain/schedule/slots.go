package schedule

import "time"

// Policy escolhe o nível de geração de slots. Os dois modos coexistem de
// propósito: são tiers de funcionalidade diferentes, não duplicação.
type Policy int

const (
	// PolicyConfigured respeita expediente, folgas, almoço e bloqueios
	// do barbeiro (booking de convidado e de cliente).
	PolicyConfigured Policy = iota

	// PolicyFixedGrid ignora a configuração do barbeiro e gera a grade
	// genérica 09:00–19:00 (visão simples da recepção). Agendamentos
	// existentes e horários passados ainda contam.
	PolicyFixedGrid
)

// Booking é um agendamento existente reduzido ao que a grade precisa.
type Booking struct {
	StartMin    int
	DurationMin int
}

// Slot é um horário candidato de 30 minutos, derivado, nunca persistido.
type Slot struct {
	Time  string `json:"time"` // "HH:MM"
	Taken bool   `json:"taken"`
	Past  bool   `json:"past"`
}

// GenerateInput reúne tudo que a grade de um (barbeiro, data) consome.
type GenerateInput struct {
	Date     string // "YYYY-MM-DD"
	Days     []DayConfig
	Blocks   []Block
	Bookings []Booking // já sem os cancelados
	Now      time.Time // relógio local da sede
	Policy   Policy
}

// Generate produz a sequência ordenada de slots de 30 minutos da janela
// resolvida. Janela nula (dia fechado) devolve sequência vazia.
func Generate(in GenerateInput) []Slot {
	var win *Window
	var day *DayConfig

	switch in.Policy {
	case PolicyFixedGrid:
		win = &Window{Start: DefaultWindowStart, End: DefaultWindowEnd}
	default:
		win = ResolveWindow(in.Days, in.Date)
		if win != nil {
			wd := Weekday(in.Date)
			for i := range in.Days {
				if in.Days[i].Weekday == wd {
					day = &in.Days[i]
					break
				}
			}
		}
	}

	if win == nil {
		return []Slot{}
	}

	today := in.Now.Format("2006-01-02")
	nowMin := in.Now.Hour()*60 + in.Now.Minute()

	slots := make([]Slot, 0, (win.End-win.Start)/SlotMinutes)

	for m := win.Start; m < win.End; m += SlotMinutes {
		taken := false
		if in.Policy == PolicyConfigured {
			taken = slotExcluded(m, in.Date, day, in.Blocks)
		}
		if !taken && takenByBooking(m, in.Bookings) {
			taken = true
		}

		// Igualdade conta como passado: slot começando exatamente "agora"
		// não é agendável.
		past := in.Date < today || (in.Date == today && m <= nowMin)

		slots = append(slots, Slot{
			Time:  Label(m),
			Taken: taken,
			Past:  past,
		})
	}

	return slots
}

// takenByBooking usa a duração REAL do agendamento, não a grade: um corte de
// 60 minutos às 10:00 ocupa os slots 10:00 e 10:30.
func takenByBooking(m int, bookings []Booking) bool {
	for _, b := range bookings {
		d := b.DurationMin
		if d <= 0 {
			d = DefaultDurationMin
		}
		if m >= b.StartMin && m < b.StartMin+d {
			return true
		}
	}
	return false
}
