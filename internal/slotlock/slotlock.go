package slotlock

import (
	"fmt"
	"sync"
)

// Manager serializa as operações que mexem na capacidade de um slot.
// Um mutex por chave (bloodBankID, date, time); mutexes nunca são
// removidos, o universo de slots de um processo é pequeno.
type Manager struct {
	locks sync.Map // key string → *sync.Mutex
}

func NewManager() *Manager {
	return &Manager{}
}

func Key(bloodBankID uint, date, timeOfDay string) string {
	return fmt.Sprintf("%d|%s|%s", bloodBankID, date, timeOfDay)
}

// Lock trava a chave e devolve a função de unlock.
func (m *Manager) Lock(key string) func() {
	v, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
