// Package session holds the navigation-level session logic: the gate
// that bounces unauthenticated visitors to the login view and
// authenticated ones away from it, and the role-aware menu of the shell.
package session

import (
	"hradmin/recruitment-api/internal/models"
)

const (
	LoginPath   = "/login"
	LandingPath = "/candidates"
)

// GateAction is the navigation decision for one path visit.
type GateAction int

const (
	GateAllow GateAction = iota
	GateToLanding
	GateToLogin
)

// Decide implements the session gate: token presence alone gates access,
// no freshness or signature check happens here. A present token on the
// login path redirects to the landing page; an absent token anywhere
// else redirects to login.
func Decide(hasToken bool, path string) GateAction {
	if hasToken && path == LoginPath {
		return GateToLanding
	}
	if !hasToken && path != LoginPath {
		return GateToLogin
	}
	return GateAllow
}

// Menu returns the shell menu for a set of capabilities. Items the
// caller may not act on are dropped entirely rather than disabled.
func Menu(caps models.Capabilities) []models.MenuItem {
	items := []models.MenuItem{
		{Key: "candidates", Path: "/candidates", Label: "Кандидаты"},
	}
	if caps.CanManageUsers {
		items = append(items, models.MenuItem{Key: "mentors", Path: "/mentors", Label: "Менторы"})
	}
	items = append(items,
		models.MenuItem{Key: "tasks", Path: "/tasks", Label: "Задачи"},
		models.MenuItem{Key: "faq", Path: "/faq", Label: "FAQ"},
		models.MenuItem{Key: "mini-test", Path: "/mini-test", Label: "Мини Тест"},
	)
	if caps.CanSendNotifications {
		items = append(items, models.MenuItem{Key: "notifications", Path: "/notifications", Label: "Уведомления"})
	}
	items = append(items,
		models.MenuItem{Key: "survey", Path: "/survey", Label: "Опросник"},
		models.MenuItem{Key: "adaptation-plan", Path: "/adaptation-plan", Label: "План Адаптации"},
	)
	return items
}
