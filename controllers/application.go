package controllers

import (
	"net/http"
	"strconv"

	"travel-authorization-api/config"
	"travel-authorization-api/services"

	"github.com/gin-gonic/gin"
)

func applicationService() *services.ApplicationService {
	return services.NewApplicationService(config.DB)
}

func workflowService() *services.WorkflowService {
	return services.NewWorkflowService(config.DB)
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// GetApplications returns list of applications
func GetApplications(c *gin.Context) {
	var filter services.ApplicationFilter

	if v := c.Query("type"); v != "" {
		filter.ApplicationType, _ = strconv.Atoi(v)
	}
	if v := c.Query("org_id"); v != "" {
		filter.OrgID, _ = strconv.Atoi(v)
	}

	// Without the read-all permission a caller only sees applications
	// submitted under their own sessions. Cheapest narrowing that still
	// answers the common "my applications" query.
	_, roleID, sessionID := actingSession(c)
	if !services.HasPermission(roleID, services.PermApplicationReadAll) {
		filter.SessionID = sessionID
	}

	applications, err := applicationService().List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns single application by ID, with its derived
// current status.
func GetApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	application, err := applicationService().Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	currentStatus, err := workflowService().CurrentStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application":    application,
		"current_status": currentStatus,
	})
}

// CreateApplication creates a new travel application with its expense
// selections, fund allocations and travel histories.
func CreateApplication(c *gin.Context) {
	var req services.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, _, sessionID := actingSession(c)

	application, err := applicationService().Create(req, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// UpdateApplication merges the payload into an existing application.
func UpdateApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req services.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := applicationService().Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": application,
	})
}

// DeleteApplication removes an application and everything it owns.
func DeleteApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := applicationService().Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// TransitionApplicationStatus drives the approval workflow. The engine
// itself resolves which permission the acting role needs for the requested
// move.
func TransitionApplicationStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Status    string  `json:"status" binding:"required"`
		Remark    *string `json:"remark"`
		SessionID *int    `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, roleID, sessionID := actingSession(c)

	transition := services.TransitionRequest{
		ApplicationID: id,
		StatusName:    req.Status,
		Remark:        req.Remark,
		ActingUserID:  userID,
		ActingRoleID:  roleID,
		SessionID:     req.SessionID,
	}
	if transition.SessionID == nil && sessionID > 0 {
		transition.SessionID = &sessionID
	}

	entry, status, err := workflowService().Transition(transition)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"status":  status,
		"history": entry,
	})
}

// GetApplicationStatusHistory returns the full ordered audit trail.
func GetApplicationStatusHistory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := applicationService().Get(id); err != nil {
		respondError(c, err)
		return
	}

	entries, err := workflowService().StatusHistory(id)
	if err != nil {
		respondError(c, err)
		return
	}

	currentStatus, err := workflowService().CurrentStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history":        entries,
		"current_status": currentStatus,
		"total":          len(entries),
	})
}
