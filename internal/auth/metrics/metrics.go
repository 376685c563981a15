package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the auth module.
type Metrics struct {
	// Accounts created, by role
	UsersCreated *prometheus.CounterVec

	// Login attempts by outcome (success, failure)
	LoginOutcome *prometheus.CounterVec
}

// New creates a new Metrics instance with all auth module metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_auth_users_created_total",
			Help: "Total user accounts created, by role",
		}, []string{"role"}),

		LoginOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_auth_logins_total",
			Help: "Total login attempts by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementUsersCreated records a new account by role.
func (m *Metrics) IncrementUsersCreated(role string) {
	if m != nil {
		m.UsersCreated.WithLabelValues(role).Inc()
	}
}

// IncrementLogin records a login attempt outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.LoginOutcome.WithLabelValues(outcome).Inc()
	}
}
