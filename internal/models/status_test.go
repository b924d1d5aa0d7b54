package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminStatusLabels(t *testing.T) {
	tests := []struct {
		status AdminStatus
		label  string
		color  string
	}{
		{AdminInterview, "На собеседовании", "orange"},
		{AdminAccepted, "Принят", "green"},
		{AdminRejected, "Отказан", "red"},
		{AdminNotAssigned, "Не назначен", "default"},
		{AdminStatus(""), "Не назначен", "default"},
		{AdminStatus("garbage"), "Не назначен", "default"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.status.Label(), "label for %q", tt.status)
		assert.Equal(t, tt.color, tt.status.Color(), "color for %q", tt.status)
	}
}

func TestTestStatusLabels(t *testing.T) {
	assert.Equal(t, "Завершен", TestCompleted.Label())
	assert.Equal(t, "В тестировании", TestStarted.Label())
	assert.Equal(t, "Не назначен", TestNotAssigned.Label())
	assert.Equal(t, "Не назначен", TestStatus("unknown").Label())
}

func TestAssignmentStatusLabels(t *testing.T) {
	tests := []struct {
		status AssignmentStatus
		label  string
		color  string
	}{
		{AssignmentDone, "Выполнено", "green"},
		{AssignmentFailed, "Не выполнено", "red"},
		{AssignmentInProgress, "В процессе", "yellow"},
		{AssignmentNotStarted, "В процессе", "yellow"},
		{AssignmentStatus("unknown"), "В процессе", "yellow"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.status.Label(), "label for %q", tt.status)
		assert.Equal(t, tt.color, tt.status.Color(), "color for %q", tt.status)
	}
}

func TestAssignmentStatusValid(t *testing.T) {
	assert.True(t, AssignmentDone.Valid())
	assert.True(t, AssignmentNotStarted.Valid())
	assert.False(t, AssignmentStatus("done!").Valid())
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor(RoleAdmin)
	assert.True(t, admin.CanManageUsers)
	assert.True(t, admin.CanEditPlans)
	assert.True(t, admin.CanManageStaffPlans)
	assert.True(t, admin.CanSendNotifications)
	assert.True(t, admin.CanManageContent)

	op := CapabilitiesFor(RoleOp)
	assert.False(t, op.CanManageUsers)
	assert.True(t, op.CanManageStaffPlans)

	line := CapabilitiesFor(RoleLine)
	assert.Equal(t, Capabilities{}, line)
}

func TestRoleLabel(t *testing.T) {
	admin := User{Role: RoleAdmin}
	assert.Equal(t, "Админ", admin.RoleLabel())

	mentor := User{Role: RoleLine}
	assert.Equal(t, "Наставник", mentor.RoleLabel())
}
