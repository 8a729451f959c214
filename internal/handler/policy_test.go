package handler_test

import (
	"testing"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/handler"
)

func TestAllowed(t *testing.T) {
	admin := &domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	member := &domain.Principal{UserID: 2, Role: domain.RoleMember}

	tests := []struct {
		op                           handler.Operation
		anonymous, asMember, asAdmin bool
	}{
		{handler.OpSignup, true, true, true},
		{handler.OpAuthenticate, true, true, true},
		{handler.OpCurrentUser, false, true, true},
		{handler.OpListCoaches, false, true, true},
		{handler.OpCreateCoach, false, false, true},
		{handler.OpUpdateCoach, false, false, true},
		{handler.OpDeleteCoach, false, false, true},
		{handler.OpListClasses, false, true, true},
		{handler.OpCreateClass, false, false, true},
		{handler.OpUpdateClass, false, false, true},
		{handler.OpDeleteClass, false, false, true},
		{handler.OpRegisterForClass, false, true, true},
		{handler.OpCancelRegistration, false, true, true},
		{handler.OpListMyRegistrations, false, true, true},
		{handler.OpListAllRegistrations, false, false, true},
		{handler.OpListUsers, false, false, true},
		{handler.OpUpdateUser, false, false, true},
		{handler.OpDeleteUser, false, false, true},
		{handler.OpGetRecommendation, false, true, true},
		{handler.OpComputeRecommendation, false, true, true},
		{handler.OpDeleteRecommendation, false, true, true},
		{handler.Operation("drop_tables"), false, false, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			if got := handler.Allowed(tc.op, nil); got != tc.anonymous {
				t.Errorf("anonymous: expected %v, got %v", tc.anonymous, got)
			}
			if got := handler.Allowed(tc.op, member); got != tc.asMember {
				t.Errorf("member: expected %v, got %v", tc.asMember, got)
			}
			if got := handler.Allowed(tc.op, admin); got != tc.asAdmin {
				t.Errorf("admin: expected %v, got %v", tc.asAdmin, got)
			}
		})
	}
}
