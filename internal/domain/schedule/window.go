package schedule

// AvailabilityWindow é o pedido bruto do banco de sangue: um intervalo de
// datas, um intervalo de horário por dia e a capacidade de cada slot.
// É consumido imediatamente pelo gerador; nunca é persistido.
type AvailabilityWindow struct {
	BloodBankID uint

	StartDate string // YYYY-MM-DD, inclusivo
	EndDate   string // YYYY-MM-DD, inclusivo

	StartTime string // HH:mm
	EndTime   string // HH:mm, estritamente depois de StartTime

	CapacityPerSlot int
}
