package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPendingCaseInsensitive(t *testing.T) {
	assert.True(t, (&StatusChangeRequest{RequestStatus: RequestStatusPending}).IsPending())
	assert.True(t, (&StatusChangeRequest{RequestStatus: "pending"}).IsPending())
	assert.True(t, (&StatusChangeRequest{RequestStatus: "Pending"}).IsPending())
	assert.False(t, (&StatusChangeRequest{RequestStatus: RequestStatusApproved}).IsPending())
	assert.False(t, (&StatusChangeRequest{RequestStatus: ""}).IsPending())
}

func TestToResponseEnrichment(t *testing.T) {
	request := StatusChangeRequest{
		FromStatus:    ProjectStatusTodo,
		ToStatus:      ProjectStatusInProgress,
		RequestStatus: RequestStatusApproved,
		Project:       &Project{Title: "Spring teaser", Brand: "Acme", Type: ProjectTypeVideo},
		Requester:     &Member{DisplayName: "Ana"},
		Approver:      &Member{DisplayName: "Lead"},
	}

	resp := request.ToResponse()
	assert.Equal(t, "Spring teaser", resp.ProjectTitle)
	assert.Equal(t, "Acme", resp.ProjectBrand)
	assert.Equal(t, ProjectTypeVideo, resp.ProjectType)
	assert.Equal(t, "Ana", resp.RequesterName)
	assert.Equal(t, "Lead", resp.ApproverName)

	// Bare rows keep the enrichment fields empty.
	bare := (&StatusChangeRequest{RequestStatus: RequestStatusPending}).ToResponse()
	assert.Empty(t, bare.ProjectTitle)
	assert.Empty(t, bare.RequesterName)
}
