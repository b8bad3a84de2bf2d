package services_test

import (
	"testing"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestRecipientResolver_Resolve(t *testing.T) {
	resolver := services.NewRecipientResolver()

	doctor := kernel.NewUUID()
	staff1 := kernel.NewUUID()
	staff2 := kernel.NewUUID()

	t.Run("doctor and lab staff, deduplicated", func(t *testing.T) {
		got := resolver.Resolve(doctor, []kernel.UUID{staff1, staff2, staff1}, kernel.NewUUID(), false)

		assert.Equal(t, []kernel.UUID{doctor, staff1, staff2}, got)
	})

	t.Run("status change keeps the actor", func(t *testing.T) {
		got := resolver.Resolve(doctor, []kernel.UUID{staff1}, staff1, false)

		assert.Contains(t, got, staff1)
	})

	t.Run("note added excludes the actor", func(t *testing.T) {
		got := resolver.Resolve(doctor, []kernel.UUID{staff1, staff2}, staff1, true)

		assert.Equal(t, []kernel.UUID{doctor, staff2}, got)
	})

	t.Run("acting doctor is excluded from note notifications", func(t *testing.T) {
		got := resolver.Resolve(doctor, []kernel.UUID{staff1}, doctor, true)

		assert.Equal(t, []kernel.UUID{staff1}, got)
	})
}
