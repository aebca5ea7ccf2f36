package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writePolicyFile(t *testing.T, policy SyncPolicyConfig) string {
	t.Helper()
	data, err := yaml.Marshal(policy)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sync_policy.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadSyncPolicy_OverridesEnvironmentDefaults(t *testing.T) {
	LoadEnvValues()
	path := writePolicyFile(t, SyncPolicyConfig{
		LoanIntervalMinutes:      7,
		PaymentIntervalMinutes:   3,
		DashboardIntervalMinutes: 11,
		PendingPaymentTTLHours:   2,
	})

	require.NoError(t, LoadSyncPolicy(path))

	assert.Equal(t, 7, LOAN_SYNC_INTERVAL_MINUTES)
	assert.Equal(t, 3, PAYMENT_SYNC_INTERVAL_MINS)
	assert.Equal(t, 11, DASHBOARD_SYNC_INTERVAL_MINS)
	assert.Equal(t, 2, PENDING_PAYMENT_TTL_IN_HOURS)
}

func TestLoadSyncPolicy_ZeroValuesKeepDefaults(t *testing.T) {
	LoadEnvValues()
	wantLoan := LOAN_SYNC_INTERVAL_MINUTES
	wantTTL := PENDING_PAYMENT_TTL_IN_HOURS

	path := writePolicyFile(t, SyncPolicyConfig{PaymentIntervalMinutes: 9})
	require.NoError(t, LoadSyncPolicy(path))

	assert.Equal(t, wantLoan, LOAN_SYNC_INTERVAL_MINUTES)
	assert.Equal(t, wantTTL, PENDING_PAYMENT_TTL_IN_HOURS)
	assert.Equal(t, 9, PAYMENT_SYNC_INTERVAL_MINS)
}

func TestLoadSyncPolicy_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, LoadSyncPolicy(""))
}

func TestLoadSyncPolicy_MissingFile(t *testing.T) {
	err := LoadSyncPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSyncPolicy_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync_policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loan_interval_minutes: [oops"), 0o600))

	assert.Error(t, LoadSyncPolicy(path))
}
