package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationIntervalDays(t *testing.T) {
	cfg := &Config{IntervalMaleDays: 60, IntervalFemaleDays: 90}

	assert.Equal(t, 60, cfg.DonationIntervalDays("male"))
	assert.Equal(t, 60, cfg.DonationIntervalDays("Masculino"))
	assert.Equal(t, 90, cfg.DonationIntervalDays("female"))
	assert.Equal(t, 90, cfg.DonationIntervalDays("Feminino"))

	// gênero desconhecido: fica com o intervalo mais conservador
	assert.Equal(t, 90, cfg.DonationIntervalDays(""))
	assert.Equal(t, 90, cfg.DonationIntervalDays("other"))
}
