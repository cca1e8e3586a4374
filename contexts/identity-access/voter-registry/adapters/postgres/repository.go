package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "agora/contexts/identity-access/voter-registry/domain/errors"
	"agora/contexts/identity-access/voter-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) InsertVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrVoterAlreadyExists
		}
		return r.logError("registry_repo_insert_voter_failed", err, "voter_id", row.ID)
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_voter_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return row.toEntity(), nil
}

func (r *Repository) VoterExists(ctx context.Context, voterID string) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("id = ?", strings.TrimSpace(voterID)).
		Count(&total).Error; err != nil {
		return false, r.logError("registry_repo_voter_exists_failed", err, "voter_id", strings.TrimSpace(voterID))
	}
	return total > 0, nil
}

func (r *Repository) DeleteVoter(ctx context.Context, voterID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		Delete(&voterModel{})
	if result.Error != nil {
		return r.logError("registry_repo_delete_voter_failed", result.Error, "voter_id", strings.TrimSpace(voterID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoterNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/voter-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voter repository operation failed", fields...)
	return err
}

// SystemClock is the production Clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator issues uuid-v4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type voterModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Document  string    `gorm:"column:document;uniqueIndex;size:14;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voterModel) TableName() string {
	return "voters"
}

func voterModelFromEntity(voter entities.Voter) voterModel {
	return voterModel{
		ID:        strings.TrimSpace(voter.VoterID),
		Document:  strings.TrimSpace(voter.Document),
		CreatedAt: voter.CreatedAt.UTC(),
	}
}

func (m voterModel) toEntity() entities.Voter {
	return entities.Voter{
		VoterID:   m.ID,
		Document:  m.Document,
		CreatedAt: m.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoterRepository = (*Repository)(nil)
