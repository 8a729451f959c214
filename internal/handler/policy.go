package handler

import (
	"net/http"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/service"
)

// Operation names one externally reachable action.
type Operation string

const (
	OpSignup                Operation = "signup"
	OpAuthenticate          Operation = "authenticate"
	OpCurrentUser           Operation = "current_user"
	OpListCoaches           Operation = "list_coaches"
	OpCreateCoach           Operation = "create_coach"
	OpUpdateCoach           Operation = "update_coach"
	OpDeleteCoach           Operation = "delete_coach"
	OpListClasses           Operation = "list_classes"
	OpCreateClass           Operation = "create_class"
	OpUpdateClass           Operation = "update_class"
	OpDeleteClass           Operation = "delete_class"
	OpRegisterForClass      Operation = "register_for_class"
	OpCancelRegistration    Operation = "cancel_registration"
	OpListMyRegistrations   Operation = "list_my_registrations"
	OpListAllRegistrations  Operation = "list_all_registrations"
	OpListUsers             Operation = "list_users"
	OpUpdateUser            Operation = "update_user"
	OpDeleteUser            Operation = "delete_user"
	OpGetRecommendation     Operation = "get_recommendation"
	OpComputeRecommendation Operation = "compute_and_store_recommendation"
	OpDeleteRecommendation  Operation = "delete_recommendation"
)

// access is what an operation demands of the caller.
type access int

const (
	public        access = iota // no token needed
	authenticated               // any active account
	adminOnly
)

// Self-scoped operations are "authenticated" here; the handler then checks
// Principal.CanActFor against the user id the request targets.
var policy = map[Operation]access{
	OpSignup:                public,
	OpAuthenticate:          public,
	OpCurrentUser:           authenticated,
	OpListCoaches:           authenticated,
	OpCreateCoach:           adminOnly,
	OpUpdateCoach:           adminOnly,
	OpDeleteCoach:           adminOnly,
	OpListClasses:           authenticated,
	OpCreateClass:           adminOnly,
	OpUpdateClass:           adminOnly,
	OpDeleteClass:           adminOnly,
	OpRegisterForClass:      authenticated,
	OpCancelRegistration:    authenticated,
	OpListMyRegistrations:   authenticated,
	OpListAllRegistrations:  adminOnly,
	OpListUsers:             adminOnly,
	OpUpdateUser:            adminOnly,
	OpDeleteUser:            adminOnly,
	OpGetRecommendation:     authenticated,
	OpComputeRecommendation: authenticated,
	OpDeleteRecommendation:  authenticated,
}

// Allowed reports whether principal may invoke op. A nil principal stands
// for an anonymous caller. Unknown operations are denied.
func Allowed(op Operation, principal *domain.Principal) bool {
	need, ok := policy[op]
	if !ok {
		return false
	}
	switch need {
	case public:
		return true
	case authenticated:
		return principal != nil
	default:
		return principal != nil && principal.IsAdmin()
	}
}

// RequireOperation authenticates the request when op needs it and rejects
// callers the policy table does not allow.
func RequireOperation(auth *service.AuthService, op Operation, next http.HandlerFunc) http.Handler {
	if need, ok := policy[op]; ok && need == public {
		return next
	}
	return RequireAuth(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFromContext(r.Context())
		if !Allowed(op, &p) {
			writeError(w, http.StatusForbidden, "Access forbidden.")
			return
		}
		next(w, r)
	}))
}

// requireSelf writes 403 and returns false unless the caller may act for userID.
func requireSelf(w http.ResponseWriter, r *http.Request, userID int64) bool {
	p, ok := PrincipalFromContext(r.Context())
	if !ok || !p.CanActFor(userID) {
		writeError(w, http.StatusForbidden, "Access forbidden.")
		return false
	}
	return true
}
