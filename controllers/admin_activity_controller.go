package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func activityQuery(c *gin.Context) *gorm.DB {
	query := config.DB.Model(&models.ActivityLog{})
	if activityType := c.Query("type"); activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if actorType := c.Query("actor_type"); actorType != "" {
		query = query.Where("actor_type = ?", actorType)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	return query
}

// ListActivityLogs returns the audit trail with filters and pagination
func ListActivityLogs(c *gin.Context) {
	utils.LogInfo("ListActivityLogs called")

	if _, ok := adminFromContext(c); !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := activityQuery(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count activity logs: %v", err)
		utils.InternalServerError(c, "Failed to fetch activity logs", nil)
		return
	}

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs).Error; err != nil {
		utils.LogError("Failed to fetch activity logs: %v", err)
		utils.InternalServerError(c, "Failed to fetch activity logs", nil)
		return
	}

	utils.SuccessWithPagination(c, "Activity logs retrieved successfully", logs, total, page, perPage)
}

// ExportActivityLogs streams the filtered audit trail as an Excel file
func ExportActivityLogs(c *gin.Context) {
	utils.LogInfo("ExportActivityLogs called")

	if _, ok := adminFromContext(c); !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	var logs []models.ActivityLog
	if err := activityQuery(c).Order("created_at DESC").Limit(10000).Find(&logs).Error; err != nil {
		utils.LogError("Failed to fetch activity logs for export: %v", err)
		utils.InternalServerError(c, "Failed to export activity logs", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Activity Log")
	if err != nil {
		utils.LogError("Failed to build export sheet: %v", err)
		utils.InternalServerError(c, "Failed to export activity logs", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Time", "Actor", "Actor ID", "Activity", "Entity", "Entity ID", "Description"} {
		header.AddCell().SetString(title)
	}

	for _, entry := range logs {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(entry.ID))
		row.AddCell().SetString(entry.CreatedAt.Format(time.RFC3339))
		row.AddCell().SetString(entry.ActorType)
		row.AddCell().SetInt(int(entry.ActorID))
		row.AddCell().SetString(entry.ActivityType)
		row.AddCell().SetString(entry.EntityType)
		row.AddCell().SetInt(int(entry.EntityID))
		row.AddCell().SetString(entry.Description)
	}

	filename := fmt.Sprintf("activity_log_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write export: %v", err)
	}
}
