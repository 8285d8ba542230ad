package services

import (
	"time"

	"github.com/woffu/woffu/internal/models"
	"gorm.io/gorm"
)

// DashboardStats is the read-only aggregation payload. The counts are
// gathered by independent queries, so callers polling them may observe
// transient skew between total and per-status values.
type DashboardStats struct {
	TotalProjects    int64                          `json:"total_projects"`
	ByStatus         map[models.ProjectStatus]int64 `json:"by_status"`
	PendingApprovals int64                          `json:"pending_approvals"`
	MyWorkDueSoon    int64                          `json:"my_work_due_soon"`
}

type DashboardService struct {
	db          *gorm.DB
	dueSoonDays int
}

func NewDashboardService(db *gorm.DB, dueSoonDays int) *DashboardService {
	return &DashboardService{db: db, dueSoonDays: dueSoonDays}
}

// Stats computes the dashboard rollups for the given caller. Pending
// approvals are reported only to leaders; everyone else sees 0.
func (s *DashboardService) Stats(caller *models.Member, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{
		ByStatus: make(map[models.ProjectStatus]int64, len(models.AllProjectStatuses)),
	}

	if err := s.db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	// Zero-fill so missing statuses still report 0.
	for _, status := range models.AllProjectStatuses {
		stats.ByStatus[status] = 0
	}

	var rows []struct {
		Status models.ProjectStatus
		Count  int64
	}
	if err := s.db.Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	if caller.IsLeader() {
		if err := s.db.Model(&models.StatusChangeRequest{}).
			Where("request_status = ?", models.RequestStatusPending).
			Count(&stats.PendingApprovals).Error; err != nil {
			return nil, err
		}
	}

	// Date-only window check happens in Go to keep the comparison
	// identical across sqlite and postgres.
	var mine []models.Project
	if err := s.db.Where("assignee_id = ? AND status <> ? AND due_date IS NOT NULL",
		caller.ID, models.ProjectStatusCompleted).Find(&mine).Error; err != nil {
		return nil, err
	}
	for _, p := range mine {
		if p.DueSoon(now, s.dueSoonDays) {
			stats.MyWorkDueSoon++
		}
	}

	return stats, nil
}
