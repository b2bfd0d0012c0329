package deploy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/database/settings"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

func setupService(t *testing.T, cfg config.Deploy) (*Service, func()) {
	dbPath := "./test_deploy_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Setting{}))

	svc := NewService(settings.NewRepository(db), cfg)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return svc, cleanup
}

func TestService_LedgerEmpty(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{})
	defer cleanup()

	deployed, err := svc.LastDeployedAt()
	require.NoError(t, err)
	assert.Empty(t, deployed)

	pending, err := svc.HasPendingChanges()
	require.NoError(t, err)
	assert.False(t, pending, "no recorded content change means nothing pending")
}

func TestService_PendingAfterContentChange(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{})
	defer cleanup()

	require.NoError(t, svc.MarkContentModified())

	pending, err := svc.HasPendingChanges()
	require.NoError(t, err)
	assert.True(t, pending, "content change with no deploy is always pending")
}

func TestService_DeployClearsPending(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{})
	defer cleanup()

	require.NoError(t, svc.settings.SetSetting(entities.SettingKeyLastContentModifiedAt, "2024-01-01T00:00:00Z"))
	require.NoError(t, svc.SetLastDeployedAt("2024-01-02T00:00:00Z"))

	pending, err := svc.HasPendingChanges()
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestService_AcceptsLegacyQuotedTimestamps(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{})
	defer cleanup()

	require.NoError(t, svc.settings.SetSetting(entities.SettingKeyLastDeployedAt, `"2024-01-02T00:00:00Z"`))

	deployed, err := svc.LastDeployedAt()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T00:00:00Z", deployed)
}

func TestService_Trigger(t *testing.T) {
	var hit bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		assert.Equal(t, http.MethodPost, r.Method)
	}))
	defer server.Close()

	svc, cleanup := setupService(t, config.Deploy{HookURL: server.URL})
	defer cleanup()

	require.NoError(t, svc.Trigger(context.Background()))
	assert.True(t, hit)
}

func TestService_Trigger_Unconfigured(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{})
	defer cleanup()

	assert.Error(t, svc.Trigger(context.Background()))
}

func TestService_CurrentStatus_WithProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"deployments":[{"uid":"dep_1","state":"BUILDING","url":"preview.example.com","createdAt":1700000000000}]}`))
	}))
	defer server.Close()

	svc, cleanup := setupService(t, config.Deploy{APIToken: "token", ProjectID: "prj_1"})
	defer cleanup()
	svc.apiBaseURL = server.URL

	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)

	assert.True(t, status.IsDeploying)
	require.NotNil(t, status.CurrentDeployment)
	assert.Equal(t, "dep_1", status.CurrentDeployment.ID)
	assert.Equal(t, "2023-11-14T22:13:20Z", status.CurrentDeployment.CreatedAt)
}

func TestService_CurrentStatus_ProviderUnavailable(t *testing.T) {
	svc, cleanup := setupService(t, config.Deploy{APIToken: "token", ProjectID: "prj_1"})
	defer cleanup()
	svc.apiBaseURL = "http://127.0.0.1:0"

	// Provider failures degrade to ledger-only status
	status, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsDeploying)
	assert.Nil(t, status.CurrentDeployment)
}
