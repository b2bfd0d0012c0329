package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierdv/portfolio-migrator/internal/deploy"
)

// DeployController exposes the freshness ledger and deploy hook over HTTP.
type DeployController struct {
	service *deploy.Service
	now     func() time.Time
}

func NewDeployController(service *deploy.Service) *DeployController {
	return &DeployController{
		service: service,
		now:     time.Now,
	}
}

// GetStatus returns the ledger state plus the latest provider deployment.
func (d *DeployController) GetStatus(c *gin.Context) {
	status, err := d.service.CurrentStatus(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "deploy status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// Trigger fires the configured deploy hook.
func (d *DeployController) Trigger(c *gin.Context) {
	if err := d.service.Trigger(c.Request.Context()); err != nil {
		respondInternalError(c, err, "deploy trigger")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deployment triggered"})
}

// Complete records a finished deploy in the ledger. Called by the admin UI
// once it observes the provider reach a terminal state.
func (d *DeployController) Complete(c *gin.Context) {
	timestamp := d.now().UTC().Format(time.RFC3339)
	if err := d.service.SetLastDeployedAt(timestamp); err != nil {
		respondInternalError(c, err, "deploy complete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lastDeployedAt": timestamp})
}

type webhookPayload struct {
	Type    string `json:"type"`
	Payload struct {
		Deployment struct {
			State string `json:"state"`
		} `json:"deployment"`
	} `json:"payload"`
}

// Webhook is the unauthenticated provider callback. Only a successful
// deployment updates the ledger; everything else is acknowledged and ignored.
func (d *DeployController) Webhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid webhook payload")
		return
	}

	succeeded := payload.Type == "deployment.succeeded" ||
		payload.Payload.Deployment.State == "READY"
	if !succeeded {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	timestamp := d.now().UTC().Format(time.RFC3339)
	if err := d.service.SetLastDeployedAt(timestamp); err != nil {
		respondInternalError(c, err, "deploy webhook")
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "lastDeployedAt": timestamp})
}
