package postgresql

import (
	"context"
	"fmt"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type approvalActionRepositoryImpl struct {
	db *database.DB
}

func NewApprovalActionRepository(db *database.DB) approval.ApprovalActionRepository {
	return &approvalActionRepositoryImpl{db: db}
}

// Append implements approval.ApprovalActionRepository.
func (r *approvalActionRepositoryImpl) Append(ctx context.Context, action approval.ApprovalAction) (approval.ApprovalAction, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO approval_actions (
			id, entity_kind, entity_id, from_state, to_state,
			action, actor_id, actor_role, comments, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		action.EntityKind, action.EntityID, action.FromState, action.ToState,
		action.Action, action.ActorID, action.ActorRole, action.Comments,
	).Scan(&action.ID, &action.CreatedAt)
	if err != nil {
		return approval.ApprovalAction{}, fmt.Errorf("append approval action: %w", err)
	}
	return action, nil
}

// GetByEntity implements approval.ApprovalActionRepository.
func (r *approvalActionRepositoryImpl) GetByEntity(ctx context.Context, kind approval.EntityKind, entityID string) ([]approval.ApprovalAction, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, entity_kind, entity_id, from_state, to_state,
			   action, actor_id, actor_role, comments, created_at
		FROM approval_actions
		WHERE entity_kind = $1 AND entity_id = $2
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, kind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []approval.ApprovalAction
	for rows.Next() {
		var a approval.ApprovalAction
		if err := rows.Scan(
			&a.ID, &a.EntityKind, &a.EntityID, &a.FromState, &a.ToState,
			&a.Action, &a.ActorID, &a.ActorRole, &a.Comments, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
