package events

import "log"

// Eventos de domínio do agendamento. O consumidor típico é o serviço de
// notificações; a entrega é fire-and-forget.
const (
	BookingCreated   = "booking_created"
	BookingConfirmed = "booking_confirmed"
	BookingCancelled = "booking_cancelled"
	BookingCompleted = "booking_completed"
	BookingNoShow    = "booking_no_show"
)

type Event struct {
	Type        string
	BookingID   string
	UserID      uint
	BloodBankID uint
	Date        string
	Time        string
	Reason      string
}

type Subscriber interface {
	Handle(ev Event)
}

type Dispatcher struct {
	subscribers []Subscriber
	queue       chan Event
}

func NewDispatcher(subscribers ...Subscriber) *Dispatcher {
	d := &Dispatcher{
		subscribers: subscribers,
		queue:       make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		for _, s := range d.subscribers {
			s.Handle(ev)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos o evento (nunca quebrar o agendamento)
		log.Println("events queue full, dropping event", ev.Type)
	}
}

// LogSubscriber registra cada evento no log do processo. Serve de stub do
// colaborador de notificações.
type LogSubscriber struct{}

func (LogSubscriber) Handle(ev Event) {
	log.Printf("event %s booking=%s user=%d bank=%d %s %s",
		ev.Type, ev.BookingID, ev.UserID, ev.BloodBankID, ev.Date, ev.Time)
}
