package schedule

// Block é um bloqueio pontual de agenda, válido só para a data exata.
type Block struct {
	Date      string // "YYYY-MM-DD"
	StartTime string // "HH:MM"
	EndTime   string
}

// slotExcluded decide se o slot [m, m+SlotMinutes) cai num bloqueio pontual
// da data ou na pausa de almoço do weekday. Bloqueio compara a data exata;
// almoço repete toda semana.
func slotExcluded(m int, date string, day *DayConfig, blocks []Block) bool {
	for _, b := range blocks {
		if b.Date != date {
			continue
		}
		bs := ToMinutes(b.StartTime)
		be := ToMinutes(b.EndTime)
		if Overlaps(m, SlotMinutes, bs, be-bs) {
			return true
		}
	}

	if day != nil && day.LunchStart != "" && day.LunchEnd != "" {
		ls := ToMinutes(day.LunchStart)
		le := ToMinutes(day.LunchEnd)
		if Overlaps(m, SlotMinutes, ls, le-ls) {
			return true
		}
	}

	return false
}
