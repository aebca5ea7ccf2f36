package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SyncPolicyConfig tunes how often cached data is considered stale.
// Values are minutes unless the field name says otherwise; zero means
// keep the value already loaded from the environment.
type SyncPolicyConfig struct {
	LoanIntervalMinutes      int `yaml:"loan_interval_minutes"`
	PaymentIntervalMinutes   int `yaml:"payment_interval_minutes"`
	DashboardIntervalMinutes int `yaml:"dashboard_interval_minutes"`
	PendingPaymentTTLHours   int `yaml:"pending_payment_ttl_hours"`
}

// LoadSyncPolicy overlays sync intervals from a YAML file on top of the
// environment-derived defaults. A missing path is not an error.
func LoadSyncPolicy(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sync policy file %s: %w", path, err)
	}

	var policy SyncPolicyConfig
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return fmt.Errorf("failed to parse sync policy file %s: %w", path, err)
	}

	ApplySyncPolicy(policy)
	return nil
}

// ApplySyncPolicy applies non-zero overrides to the package-level values.
func ApplySyncPolicy(policy SyncPolicyConfig) {
	if policy.LoanIntervalMinutes > 0 {
		LOAN_SYNC_INTERVAL_MINUTES = policy.LoanIntervalMinutes
	}
	if policy.PaymentIntervalMinutes > 0 {
		PAYMENT_SYNC_INTERVAL_MINS = policy.PaymentIntervalMinutes
	}
	if policy.DashboardIntervalMinutes > 0 {
		DASHBOARD_SYNC_INTERVAL_MINS = policy.DashboardIntervalMinutes
	}
	if policy.PendingPaymentTTLHours > 0 {
		PENDING_PAYMENT_TTL_IN_HOURS = policy.PendingPaymentTTLHours
	}
}
