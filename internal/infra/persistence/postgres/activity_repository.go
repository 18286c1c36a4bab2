package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
	"mapnote/internal/infra/persistence/model"
)

const pruneActivitySQL = `DELETE FROM map_activities
WHERE map_id = ? AND id NOT IN (
	SELECT id FROM map_activities WHERE map_id = ? ORDER BY id DESC LIMIT ?
)`

// activityRepository implements repository.ActivityRepository on PostgreSQL.
type activityRepository struct {
	db       *gorm.DB
	capacity int
	logger   *slog.Logger
}

// NewActivityRepository keeps at most capacity rows per map.
func NewActivityRepository(db *gorm.DB, capacity int, logger *slog.Logger) repository.ActivityRepository {
	return &activityRepository{
		db:       db,
		capacity: capacity,
		logger:   logger,
	}
}

func (repo *activityRepository) Append(ctx context.Context, activity *entity.MapActivity) (bool, error) {
	activityM, err := fromActivityDomain(activity)
	if err != nil {
		return false, err
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(activityM)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "insert map activity")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if repo.capacity > 0 {
		// Best-effort; an oversized history is harmless
		if err := repo.db.WithContext(ctx).Exec(pruneActivitySQL, activityM.MapID, activityM.MapID, repo.capacity).Error; err != nil {
			repo.logger.WarnContext(ctx, "Failed to prune map activity",
				slog.String("map_id", activity.MapID),
				slog.Any("error", err),
			)
		}
	}

	return true, nil
}

func (repo *activityRepository) ListByMap(ctx context.Context, mapID string, limit int) ([]entity.MapActivity, error) {
	id, err := uuid.Parse(mapID)
	if err != nil {
		return []entity.MapActivity{}, nil
	}

	query := repo.db.WithContext(ctx).
		Where("map_id = ?", id).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.MapActivityModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list map activity")
	}

	activities := make([]entity.MapActivity, 0, len(rows))
	for idx := range rows {
		activities = append(activities, toActivityDomain(&rows[idx]))
	}

	return activities, nil
}

func fromActivityDomain(activity *entity.MapActivity) (*model.MapActivityModel, error) {
	mapID, err := uuid.Parse(activity.MapID)
	if err != nil {
		return nil, errors.Wrapf(err, "map id %q", activity.MapID)
	}

	messageID := activity.MessageID
	if messageID == "" {
		messageID = uuid.NewString()
	}

	return &model.MapActivityModel{
		MapID:      mapID,
		MessageID:  messageID,
		Type:       activity.Type,
		SubjectID:  activity.SubjectID,
		Payload:    activity.Payload,
		RequestID:  activity.RequestID,
		OccurredAt: activity.OccurredAt,
		ReceivedAt: activity.ReceivedAt,
	}, nil
}

func toActivityDomain(data *model.MapActivityModel) entity.MapActivity {
	return entity.MapActivity{
		MessageID:  data.MessageID,
		MapID:      data.MapID.String(),
		Type:       data.Type,
		SubjectID:  data.SubjectID,
		Payload:    data.Payload,
		RequestID:  data.RequestID,
		OccurredAt: data.OccurredAt,
		ReceivedAt: data.ReceivedAt,
	}
}
