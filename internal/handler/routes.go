package handler

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/fitcoach/internal/service"
)

// Services bundles what the routes need.
type Services struct {
	Auth            *service.AuthService
	Schedule        *service.ScheduleService
	Recommendations *service.RecommendationService
	// LoginLimiter throttles POST /login per client IP. Nil disables it.
	LoginLimiter *service.TokenBucket
	DB           *sql.DB
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authH := NewAuthHandler(s.Auth, s.LoginLimiter, s.CookieSecure)
	userH := NewUserHandler(s.Auth)
	schedH := NewScheduleHandler(s.Schedule)
	recH := NewRecommendationHandler(s.Recommendations)
	pageH := NewPageHandler(s.Schedule)

	var pinger Pinger
	if s.DB != nil {
		pinger = s.DB
	}
	mux.HandleFunc("GET /healthz", HandleHealthz(pinger))
	mux.Handle("GET /metrics", promhttp.Handler())

	op := func(o Operation, h http.HandlerFunc) http.Handler {
		return RequireOperation(s.Auth, o, h)
	}

	mux.Handle("POST /signup", op(OpSignup, authH.HandleSignup))
	mux.Handle("POST /login", op(OpAuthenticate, authH.HandleLogin))
	mux.HandleFunc("POST /logout", authH.HandleLogout)
	mux.Handle("GET /current_user", op(OpCurrentUser, authH.HandleCurrentUser))

	mux.Handle("GET /coaches", op(OpListCoaches, schedH.HandleListCoaches))
	mux.Handle("POST /coaches", op(OpCreateCoach, schedH.HandleCreateCoach))
	mux.Handle("PUT /coaches/{id}", op(OpUpdateCoach, schedH.HandleUpdateCoach))
	mux.Handle("DELETE /coaches/{id}", op(OpDeleteCoach, schedH.HandleDeleteCoach))

	mux.Handle("GET /classes", op(OpListClasses, schedH.HandleListClasses))
	mux.Handle("POST /classes", op(OpCreateClass, schedH.HandleCreateClass))
	mux.Handle("PUT /classes/{id}", op(OpUpdateClass, schedH.HandleUpdateClass))
	mux.Handle("DELETE /classes/{id}", op(OpDeleteClass, schedH.HandleDeleteClass))

	mux.Handle("POST /register", op(OpRegisterForClass, schedH.HandleRegister))
	mux.Handle("DELETE /cancel_registration/{class_id}", op(OpCancelRegistration, schedH.HandleCancel))
	mux.Handle("GET /registrations", op(OpListMyRegistrations, schedH.HandleMyRegistrations))
	mux.Handle("GET /all-registrations", op(OpListAllRegistrations, schedH.HandleAllRegistrations))

	mux.Handle("GET /users", op(OpListUsers, userH.HandleList))
	mux.Handle("PUT /users/{id}", op(OpUpdateUser, userH.HandleUpdate))
	mux.Handle("DELETE /users/{id}", op(OpDeleteUser, userH.HandleDelete))

	mux.Handle("GET /recommendations/{user_id}", op(OpGetRecommendation, recH.HandleGet))
	mux.Handle("POST /recommendations/{user_id}", op(OpComputeRecommendation, recH.HandleCompute))
	mux.Handle("DELETE /recommendations/{user_id}", op(OpDeleteRecommendation, recH.HandleDelete))

	mux.Handle("GET /schedule", OptionalAuth(s.Auth, http.HandlerFunc(pageH.HandleSchedule)))
	mux.Handle("GET /schedule/classes", OptionalAuth(s.Auth, http.HandlerFunc(pageH.HandleClassTable)))
}

// Middleware wraps the mux with the server-wide middleware chain.
func Middleware(mux http.Handler, cors CORSConfig) http.Handler {
	return RequestLogger(nil, Recover(CORS(cors, Metrics(SecurityHeaders(mux)))))
}
