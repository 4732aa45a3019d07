package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const availabilityTTL = 30 * time.Second

// AvailabilityCache guarda snapshots de disponibilidade por (hemocentro, data)
// para aliviar a leitura pública. É opcional: com client nil todos os métodos
// viram no-op e o caminho de leitura cai direto no banco. NUNCA participa da
// decisão de reserva.
type AvailabilityCache struct {
	client *redis.Client
}

func NewAvailabilityCache(addr string, password string) *AvailabilityCache {
	if addr == "" {
		return &AvailabilityCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis indisponível (%v), cache de disponibilidade desativado", err)
		return &AvailabilityCache{}
	}

	return &AvailabilityCache{client: client}
}

func (c *AvailabilityCache) key(bloodBankID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", bloodBankID, date)
}

// Get devolve o snapshot cacheado desserializado em dest. Retorna false em
// cache miss ou em qualquer erro de leitura.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	bloodBankID uint,
	date string,
	dest any,
) bool {

	if c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, c.key(bloodBankID, date)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("redis GET falhou: %v", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}

	return true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	bloodBankID uint,
	date string,
	value any,
) {

	if c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, c.key(bloodBankID, date), raw, availabilityTTL).Err(); err != nil {
		log.Printf("redis SET falhou: %v", err)
	}
}

// Invalidate remove o snapshot após qualquer escrita que afete capacidade
// (publicação, reserva, cancelamento).
func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	bloodBankID uint,
	date string,
) {

	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, c.key(bloodBankID, date)).Err(); err != nil {
		log.Printf("redis DEL falhou: %v", err)
	}
}
