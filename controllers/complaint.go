package controllers

import (
	"net/http"

	"travel-authorization-api/config"
	"travel-authorization-api/services"

	"github.com/gin-gonic/gin"
)

func complaintService() *services.ComplaintService {
	return services.NewComplaintService(config.DB)
}

// GetComplaints lists complaints, newest first.
func GetComplaints(c *gin.Context) {
	complaints, err := complaintService().List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"total":      len(complaints),
	})
}

// GetComplaint returns one complaint with assignments, logs and history.
func GetComplaint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	complaint, err := complaintService().Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	currentStatus, err := complaintService().CurrentStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaint":      complaint,
		"current_status": currentStatus,
	})
}

// CreateComplaint registers a citizen complaint.
func CreateComplaint(c *gin.Context) {
	var req services.ComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, _, sessionID := actingSession(c)

	complaint, err := complaintService().Create(req, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Complaint created successfully",
		"complaint": complaint,
	})
}

// AssignComplaint routes a complaint to a division or a user.
func AssignComplaint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req services.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _, _ := actingSession(c)

	assignment, err := complaintService().Assign(id, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Complaint assigned successfully",
		"assignment": assignment,
	})
}

// TransitionComplaintStatus appends a status change to the complaint's
// history.
func TransitionComplaintStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Status string  `json:"status" binding:"required"`
		Remark *string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, _, sessionID := actingSession(c)

	entry, err := complaintService().Transition(id, req.Status, sessionID, req.Remark)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"history": entry,
	})
}

// GetComplaintLogs returns the append-only action log.
func GetComplaintLogs(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := complaintService().Get(id); err != nil {
		respondError(c, err)
		return
	}

	logs, err := complaintService().Logs(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}
