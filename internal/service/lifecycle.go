package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/repository"
	"gorm.io/gorm"
)

// lookupErr maps repository lookup failures to lifecycle errors.
func lookupErr(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, entity, id.String(), "")
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

// writeErr maps a lifecycle write failure, turning a stale version into CONFLICT.
func writeErr(err error, project *domain.Project) error {
	if errors.Is(err, repository.ErrStaleVersion) {
		return newError(ErrConflict, "project", project.ID.String(), "project was modified concurrently")
	}
	return err
}

// lockProject loads a project for update inside tx.
func lockProject(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	project, err := repository.NewProjectRepository(tx).GetForUpdate(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "project", id)
	}
	return project, nil
}

// appendMessage reserves the next sequence number on the project and inserts
// the message. It must run inside the transaction holding the project lock.
func appendMessage(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, msg *domain.Message) error {
	seq, err := repository.NewProjectRepository(tx).NextMessageSeq(ctx, projectID)
	if err != nil {
		return err
	}
	msg.ProjectID = projectID
	msg.Seq = seq
	msg.CreatedAt = time.Now().UTC()
	if err := repository.NewMessageRepository(tx).Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func systemMessage(body string, tag domain.MessageTag) *domain.Message {
	return &domain.Message{SenderRole: domain.SenderSystem, Body: body, Tag: tag}
}

// canView reports whether actor may read the project.
func canView(actor domain.Actor, project *domain.Project) bool {
	switch actor.Role {
	case domain.ActorRoleAdmin:
		return true
	case domain.ActorRolePM:
		return project.IsAssignedTo(actor.UserID)
	case domain.ActorRoleConsumer:
		return project.OwnerID == actor.UserID
	}
	return false
}

func requireView(actor domain.Actor, project *domain.Project) error {
	if !canView(actor, project) {
		return newError(ErrForbiddenRole, "project", project.ID.String(),
			fmt.Sprintf("%s may not access this project", actor.Role))
	}
	return nil
}

// requireOperator allows admins and the project's assigned PM.
func requireOperator(actor domain.Actor, project *domain.Project) error {
	if actor.IsAdmin() || (actor.IsPM() && project.IsAssignedTo(actor.UserID)) {
		return nil
	}
	return newError(ErrForbiddenRole, "project", project.ID.String(),
		fmt.Sprintf("%s may not operate this project", actor.Role))
}

func requireNotCancelled(project *domain.Project) error {
	if project.IsCancelled() {
		return newError(ErrAlreadyTerminal, "project", project.ID.String(), "project is cancelled").
			values(project.Status, nil)
	}
	return nil
}

// senderFor maps an actor to the transcript sender role. Admins write as PM.
func senderFor(actor domain.Actor) domain.SenderRole {
	if actor.IsConsumer() {
		return domain.SenderConsumer
	}
	return domain.SenderPM
}

// preview truncates body to n runes for notification text.
func preview(body string, n int) string {
	r := []rune(body)
	if len(r) <= n {
		return body
	}
	return string(r[:n]) + "..."
}
