package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woffu/woffu/internal/models"
)

func TestGenerateProjectReport(t *testing.T) {
	db := newTestDB(t)
	leader := createMember(t, db, "leader", models.RoleLeader)
	project := createProject(t, db, leader, models.ProjectStatusInProgress)
	project.Brand = "Acme"
	project.Description = "Launch teaser for the spring drop."
	project.VideoPriority = "HIGH"
	due := time.Now().AddDate(0, 0, 7)
	project.DueDate = &due

	logs := []models.ProjectLog{
		{
			ProjectID: project.ID,
			Action:    models.ActionStatusRequested,
			Message:   "Requested status change from TODO to IN_PROGRESS",
			CreatedAt: time.Now(),
			Actor:     leader,
		},
	}

	svc := NewReportService(testConfig())
	pdfBytes, err := svc.GenerateProjectReport(project, logs)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateProjectReportNoActivity(t *testing.T) {
	db := newTestDB(t)
	leader := createMember(t, db, "leader", models.RoleLeader)
	project := createProject(t, db, leader, models.ProjectStatusTodo)

	svc := NewReportService(testConfig())
	pdfBytes, err := svc.GenerateProjectReport(project, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}
