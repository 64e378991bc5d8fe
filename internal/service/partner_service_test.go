package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an active partner to a checklist item", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		partner := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")
		h.publisher.reset()

		assignment, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", partner.ID, " 주말 시공 가능 ")
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusPending, assignment.Status)
		assert.Equal(t, "한빛간판", assignment.PartnerName)
		assert.Equal(t, "주말 시공 가능", assignment.PMNotes)
		assert.Equal(t, h.pm.UserID, assignment.AssignedByID)
		assert.Equal(t, []domain.ProjectEventType{domain.EventPartnerAssigned}, h.publisher.types())
	})

	t.Run("unknown checklist item", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		partner := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")

		_, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "helipad", partner.ID, "")
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("unknown and inactive partners", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)

		_, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", uuid.New(), "")
		assertKind(t, err, service.ErrNotFound)

		partner := testutil.CreateTestPartner(t, h.db, "폐업간판", "signage")
		require.NoError(t, h.db.Model(&domain.Partner{}).Where("id = ?", partner.ID).Update("is_active", false).Error)
		_, err = h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", partner.ID, "")
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("consumers cannot assign", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		partner := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")

		_, err := h.partners.Assign(ctx, h.consumer, project.ID, "signage", partner.ID, "")
		assertKind(t, err, service.ErrForbiddenRole)
	})

	t.Run("cancelled project", func(t *testing.T) {
		h := newHarness(t)
		project := h.assignedProject(t)
		partner := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")
		_, err := h.projects.Cancel(ctx, h.consumer, project.ID)
		require.NoError(t, err)

		_, err = h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", partner.ID, "")
		assertKind(t, err, service.ErrAlreadyTerminal)
	})
}

func TestPartnerService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)
	partner := testutil.CreateTestPartner(t, h.db, "한빛인테리어", "interior")
	assignment, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "interior", partner.ID, "")
	require.NoError(t, err)

	t.Run("steps may be skipped", func(t *testing.T) {
		notes := "견적 확정"
		updated, err := h.partners.UpdateStatus(ctx, h.pmActor(), assignment.ID, domain.AssignmentStatusConfirmed, &notes)
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentStatusConfirmed, updated.Status)
		assert.Equal(t, "견적 확정", updated.PMNotes)
	})

	t.Run("status never moves back", func(t *testing.T) {
		_, err := h.partners.UpdateStatus(ctx, h.pmActor(), assignment.ID, domain.AssignmentStatusContacted, nil)
		assertKind(t, err, service.ErrInvalidStateTransition)
	})

	t.Run("same status keeps notes when none are given", func(t *testing.T) {
		updated, err := h.partners.UpdateStatus(ctx, h.pmActor(), assignment.ID, domain.AssignmentStatusConfirmed, nil)
		require.NoError(t, err)
		assert.Equal(t, "견적 확정", updated.PMNotes)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := h.partners.UpdateStatus(ctx, h.pmActor(), assignment.ID, domain.AssignmentStatus("archived"), nil)
		assertKind(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		_, err := h.partners.UpdateStatus(ctx, h.pmActor(), uuid.New(), domain.AssignmentStatusCompleted, nil)
		assertKind(t, err, service.ErrNotFound)
	})

	t.Run("consumers cannot update", func(t *testing.T) {
		_, err := h.partners.UpdateStatus(ctx, h.consumer, assignment.ID, domain.AssignmentStatusCompleted, nil)
		assertKind(t, err, service.ErrForbiddenRole)
	})
}

func TestPartnerService_Listing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	project := h.assignedProject(t)

	signage := testutil.CreateTestPartner(t, h.db, "한빛간판", "signage")
	testutil.CreateTestPartner(t, h.db, "가나인테리어", "interior")
	retired := testutil.CreateTestPartner(t, h.db, "다라간판", "signage")
	require.NoError(t, h.db.Model(&domain.Partner{}).Where("id = ?", retired.ID).Update("is_active", false).Error)

	t.Run("partners by category", func(t *testing.T) {
		all, err := h.partners.ListPartners(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, "가나인테리어", all[0].Name)

		bySignage, err := h.partners.ListPartners(ctx, " signage ")
		require.NoError(t, err)
		require.Len(t, bySignage, 1)
		assert.Equal(t, signage.ID, bySignage[0].ID)
	})

	t.Run("assignments follow project visibility", func(t *testing.T) {
		_, err := h.partners.Assign(ctx, h.pmActor(), project.ID, "signage", signage.ID, "")
		require.NoError(t, err)

		assignments, err := h.partners.ListAssignments(ctx, h.consumer, project.ID)
		require.NoError(t, err)
		assert.Len(t, assignments, 1)

		_, err = h.partners.ListAssignments(ctx, testutil.Consumer("outsider"), project.ID)
		assertKind(t, err, service.ErrForbiddenRole)

		_, err = h.partners.ListAssignments(ctx, h.consumer, uuid.New())
		assertKind(t, err, service.ErrNotFound)
	})
}
