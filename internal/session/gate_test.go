package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hradmin/recruitment-api/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		hasToken bool
		path     string
		want     GateAction
	}{
		{"token on login page bounces to landing", true, LoginPath, GateToLanding},
		{"token elsewhere passes", true, "/candidates", GateAllow},
		{"token on unknown path passes", true, "/whatever", GateAllow},
		{"no token on login page passes", false, LoginPath, GateAllow},
		{"no token elsewhere bounces to login", false, "/candidates", GateToLogin},
		{"no token on root bounces to login", false, "/", GateToLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.hasToken, tt.path))
		})
	}
}

func TestMenu(t *testing.T) {
	t.Run("admin sees every section", func(t *testing.T) {
		items := Menu(models.CapabilitiesFor(models.RoleAdmin))

		keys := make([]string, 0, len(items))
		for _, item := range items {
			keys = append(keys, item.Key)
		}
		assert.Equal(t, []string{
			"candidates", "mentors", "tasks", "faq", "mini-test",
			"notifications", "survey", "adaptation-plan",
		}, keys)
	})

	t.Run("line mentor loses admin-only sections", func(t *testing.T) {
		items := Menu(models.CapabilitiesFor(models.RoleLine))

		for _, item := range items {
			assert.NotEqual(t, "mentors", item.Key)
			assert.NotEqual(t, "notifications", item.Key)
		}
	})

	t.Run("labels are the display strings", func(t *testing.T) {
		items := Menu(models.CapabilitiesFor(models.RoleAdmin))
		assert.Equal(t, "Кандидаты", items[0].Label)
	})
}
