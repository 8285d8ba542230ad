package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woffu/woffu/internal/models"
)

func TestDashboardCountsSumToTotal(t *testing.T) {
	db := newTestDB(t)
	leader := createMember(t, db, "leader", models.RoleLeader)

	createProject(t, db, leader, models.ProjectStatusTodo)
	createProject(t, db, leader, models.ProjectStatusTodo)
	createProject(t, db, leader, models.ProjectStatusInProgress)
	createProject(t, db, leader, models.ProjectStatusCompleted)

	svc := NewDashboardService(db, 3)
	stats, err := svc.Stats(leader, time.Now())
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalProjects)
	assert.EqualValues(t, 2, stats.ByStatus[models.ProjectStatusTodo])
	assert.EqualValues(t, 1, stats.ByStatus[models.ProjectStatusInProgress])
	assert.EqualValues(t, 1, stats.ByStatus[models.ProjectStatusCompleted])

	// Missing statuses still report 0, and the groups sum to the total.
	var sum int64
	for _, status := range models.AllProjectStatuses {
		count, ok := stats.ByStatus[status]
		require.True(t, ok)
		sum += count
	}
	assert.Equal(t, stats.TotalProjects, sum)
	assert.Zero(t, stats.ByStatus[models.ProjectStatusBlocked])
}

func TestDashboardPendingApprovalsLeaderOnly(t *testing.T) {
	db := newTestDB(t)
	leader := createMember(t, db, "leader", models.RoleLeader)
	member := createMember(t, db, "member", models.RoleMember)
	project := createProject(t, db, leader, models.ProjectStatusTodo)

	workflow := NewWorkflowService(db)
	_, err := workflow.RequestTransition(member, project.ID, models.ProjectStatusTodo, models.ProjectStatusInProgress)
	require.NoError(t, err)

	svc := NewDashboardService(db, 3)

	leaderStats, err := svc.Stats(leader, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, leaderStats.PendingApprovals)

	memberStats, err := svc.Stats(member, time.Now())
	require.NoError(t, err)
	assert.Zero(t, memberStats.PendingApprovals)
}

func TestDashboardDueSoonWindow(t *testing.T) {
	db := newTestDB(t)
	leader := createMember(t, db, "leader", models.RoleLeader)
	member := createMember(t, db, "member", models.RoleMember)

	assign := func(due *time.Time, status models.ProjectStatus) {
		project := &models.Project{
			Title:      "Assigned work",
			Type:       models.ProjectTypeGraphic,
			Status:     status,
			CreatedBy:  leader.ID,
			AssigneeID: &member.ID,
			DueDate:    due,
		}
		require.NoError(t, db.Create(project).Error)
	}

	assign(daysFromNow(0), models.ProjectStatusTodo)        // due today: counted
	assign(daysFromNow(3), models.ProjectStatusInProgress)  // edge of window: counted
	assign(daysFromNow(4), models.ProjectStatusTodo)        // past window: not counted
	assign(daysFromNow(-1), models.ProjectStatusTodo)       // overdue: not counted
	assign(daysFromNow(1), models.ProjectStatusCompleted)   // completed: not counted
	assign(nil, models.ProjectStatusTodo)                   // no due date: not counted

	svc := NewDashboardService(db, 3)
	stats, err := svc.Stats(member, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.MyWorkDueSoon)
}
