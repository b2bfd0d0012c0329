// Package deploy implements the content-freshness ledger and the hosting
// provider integration used by the admin API. The ledger is a pair of
// timestamps in the settings table: when content last changed, and when the
// site was last deployed. A deploy is pending when the former is newer.
package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/atelierdv/portfolio-migrator/internal/config"
	"github.com/atelierdv/portfolio-migrator/internal/database/settings"
	"github.com/atelierdv/portfolio-migrator/internal/entities"
)

// Deployment states the provider reports while a build is in flight.
var inFlightStates = map[string]bool{
	"BUILDING":     true,
	"QUEUED":       true,
	"INITIALIZING": true,
}

// Service reads and writes the freshness ledger and talks to the hosting
// provider's deploy hook and status API.
type Service struct {
	settings   *settings.Repository
	httpClient *http.Client
	hookURL    string
	projectID  string
	apiToken   string
	apiBaseURL string
}

func NewService(settingsRepo *settings.Repository, cfg config.Deploy) *Service {
	return &Service{
		settings:   settingsRepo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		hookURL:    cfg.HookURL,
		projectID:  cfg.ProjectID,
		apiToken:   cfg.APIToken,
		apiBaseURL: "https://api.vercel.com",
	}
}

// Status describes the deploy state the admin UI polls for.
type Status struct {
	IsDeploying       bool        `json:"isDeploying"`
	LastDeployedAt    string      `json:"lastDeployedAt"`
	HasPendingChanges bool        `json:"hasPendingChanges"`
	CurrentDeployment *Deployment `json:"currentDeployment,omitempty"`
}

// Deployment is the latest provider deployment, when the API is configured.
type Deployment struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// LastDeployedAt returns the ledger's deploy timestamp, or "" when the site
// has never been deployed.
func (s *Service) LastDeployedAt() (string, error) {
	return s.ledgerValue(entities.SettingKeyLastDeployedAt)
}

// SetLastDeployedAt records a completed deploy.
func (s *Service) SetLastDeployedAt(timestamp string) error {
	return s.settings.SetSetting(entities.SettingKeyLastDeployedAt, timestamp)
}

// LastContentModifiedAt returns the ledger's content timestamp, or "" when
// no content change was ever recorded.
func (s *Service) LastContentModifiedAt() (string, error) {
	return s.ledgerValue(entities.SettingKeyLastContentModifiedAt)
}

// MarkContentModified records that content changed now.
func (s *Service) MarkContentModified() error {
	return s.settings.SetSetting(
		entities.SettingKeyLastContentModifiedAt,
		time.Now().UTC().Format(time.RFC3339),
	)
}

// HasPendingChanges reports whether content changed after the last deploy.
// No recorded change means nothing is pending; a recorded change with no
// deploy yet always is.
func (s *Service) HasPendingChanges() (bool, error) {
	modified, err := s.LastContentModifiedAt()
	if err != nil {
		return false, err
	}
	if modified == "" {
		return false, nil
	}

	deployed, err := s.LastDeployedAt()
	if err != nil {
		return false, err
	}
	if deployed == "" {
		return true, nil
	}

	modifiedAt, err := time.Parse(time.RFC3339, modified)
	if err != nil {
		return false, fmt.Errorf("invalid content timestamp %q: %w", modified, err)
	}
	deployedAt, err := time.Parse(time.RFC3339, deployed)
	if err != nil {
		return false, fmt.Errorf("invalid deploy timestamp %q: %w", deployed, err)
	}

	return modifiedAt.After(deployedAt), nil
}

// Trigger POSTs the configured deploy hook.
func (s *Service) Trigger(ctx context.Context) error {
	if s.hookURL == "" {
		return fmt.Errorf("deploy hook is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.hookURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("deploy hook returned status %d", resp.StatusCode)
	}
	return nil
}

// CurrentStatus combines the ledger with the latest provider deployment.
func (s *Service) CurrentStatus(ctx context.Context) (*Status, error) {
	deployed, err := s.LastDeployedAt()
	if err != nil {
		return nil, err
	}
	pending, err := s.HasPendingChanges()
	if err != nil {
		return nil, err
	}

	status := &Status{
		LastDeployedAt:    deployed,
		HasPendingChanges: pending,
	}

	if latest := s.latestDeployment(ctx); latest != nil {
		status.IsDeploying = inFlightStates[latest.State]
		status.CurrentDeployment = latest
	}

	return status, nil
}

func (s *Service) ledgerValue(key string) (string, error) {
	setting, err := s.settings.GetSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	// The legacy admin stored timestamps JSON-quoted; accept both forms.
	return strings.Trim(setting.Value, `"`), nil
}

// latestDeployment queries the provider API. Any failure degrades to "no
// deployment info" rather than failing the status call, matching how the
// admin UI treats the provider as optional.
func (s *Service) latestDeployment(ctx context.Context) *Deployment {
	if s.apiToken == "" || s.projectID == "" {
		return nil
	}

	url := fmt.Sprintf("%s/v6/deployments?projectId=%s&limit=5", s.apiBaseURL, s.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload struct {
		Deployments []struct {
			UID       string `json:"uid"`
			State     string `json:"state"`
			URL       string `json:"url"`
			CreatedAt int64  `json:"createdAt"`
		} `json:"deployments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}
	if len(payload.Deployments) == 0 {
		return nil
	}

	latest := payload.Deployments[0]
	return &Deployment{
		ID:        latest.UID,
		State:     latest.State,
		URL:       latest.URL,
		CreatedAt: time.UnixMilli(latest.CreatedAt).UTC().Format(time.RFC3339),
	}
}
