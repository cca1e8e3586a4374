package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/governance/poll-service/domain/entities"
	domainerrors "agora/contexts/governance/poll-service/domain/errors"
	"agora/contexts/governance/poll-service/ports"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
	"agora/internal/shared/pagination"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) SaveTopic(ctx context.Context, topic entities.Topic) error {
	row := topicModelFromEntity(topic)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return r.logError("poll_repo_save_topic_failed", err, "topic_id", row.ID)
	}
	return nil
}

func (r *Repository) GetTopic(ctx context.Context, topicID string) (entities.Topic, error) {
	var row topicModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(topicID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Topic{}, domainerrors.ErrTopicNotFound
		}
		return entities.Topic{}, r.logError("poll_repo_get_topic_failed", err, "topic_id", strings.TrimSpace(topicID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTopics(ctx context.Context, page pagination.Request) ([]entities.Topic, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&topicModel{}).Count(&total).Error; err != nil {
		return nil, 0, r.logError("poll_repo_count_topics_failed", err)
	}
	var rows []topicModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("poll_repo_list_topics_failed", err)
	}
	items := make([]entities.Topic, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) DeleteTopic(ctx context.Context, topicID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(topicID)).
		Delete(&topicModel{})
	if result.Error != nil {
		return r.logError("poll_repo_delete_topic_failed", result.Error, "topic_id", strings.TrimSpace(topicID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTopicNotFound
	}
	return nil
}

func (r *Repository) SaveSession(ctx context.Context, session entities.Session) error {
	row := sessionModelFromEntity(session)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return r.logError("poll_repo_save_session_failed", err,
			"session_id", row.ID,
			"topic_id", row.TopicID,
		)
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (entities.Session, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(sessionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Session{}, domainerrors.ErrSessionNotFound
		}
		return entities.Session{}, r.logError("poll_repo_get_session_failed", err, "session_id", strings.TrimSpace(sessionID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSessionsByTopic(ctx context.Context, topicID string, page pagination.Request) ([]entities.Session, int64, error) {
	id := strings.TrimSpace(topicID)
	var total int64
	if err := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("topic_id = ?", id).
		Count(&total).Error; err != nil {
		return nil, 0, r.logError("poll_repo_count_sessions_failed", err, "topic_id", id)
	}
	var rows []sessionModel
	if err := r.db.WithContext(ctx).
		Where("topic_id = ?", id).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("poll_repo_list_sessions_failed", err, "topic_id", id)
	}
	items := make([]entities.Session, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) CountSessionsByTopic(ctx context.Context, topicID string) (int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("topic_id = ?", strings.TrimSpace(topicID)).
		Count(&total).Error; err != nil {
		return 0, r.logError("poll_repo_count_sessions_by_topic_failed", err, "topic_id", strings.TrimSpace(topicID))
	}
	return int(total), nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(sessionID)).
		Delete(&sessionModel{})
	if result.Error != nil {
		return r.logError("poll_repo_delete_session_failed", result.Error, "session_id", strings.TrimSpace(sessionID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) DeleteSessionsByTopic(ctx context.Context, topicID string) error {
	if err := r.db.WithContext(ctx).
		Where("topic_id = ?", strings.TrimSpace(topicID)).
		Delete(&sessionModel{}).Error; err != nil {
		return r.logError("poll_repo_delete_sessions_by_topic_failed", err, "topic_id", strings.TrimSpace(topicID))
	}
	return nil
}

func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrVoteAlreadyCast
		}
		return r.logError("poll_repo_insert_vote_failed", err,
			"vote_id", row.ID,
			"session_id", row.SessionID,
			"voter_id", row.VoterID,
		)
	}
	return nil
}

func (r *Repository) UpdateVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	result := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"vote_option": row.Option,
			"updated_at":  row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("poll_repo_update_vote_failed", result.Error, "vote_id", row.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoteNotFound
	}
	return nil
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, r.logError("poll_repo_get_vote_failed", err, "vote_id", strings.TrimSpace(voteID))
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVotesBySession(ctx context.Context, sessionID string, page pagination.Request) ([]entities.Vote, int64, error) {
	id := strings.TrimSpace(sessionID)
	var total int64
	if err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("session_id = ?", id).
		Count(&total).Error; err != nil {
		return nil, 0, r.logError("poll_repo_count_votes_failed", err, "session_id", id)
	}
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("poll_repo_list_votes_failed", err, "session_id", id)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) CountVotesByTopicAndOption(ctx context.Context, topicID string, option entities.VoteOption) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("votes AS v").
		Joins("JOIN sessions AS s ON s.id = v.session_id").
		Where("s.topic_id = ?", strings.TrimSpace(topicID)).
		Where("v.vote_option = ?", string(option)).
		Count(&total).
		Error
	if err != nil {
		return 0, r.logError("poll_repo_count_votes_by_option_failed", err,
			"topic_id", strings.TrimSpace(topicID),
			"option", string(option),
		)
	}
	return int(total), nil
}

func (r *Repository) DeleteVote(ctx context.Context, voteID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voteID)).
		Delete(&voteModel{})
	if result.Error != nil {
		return r.logError("poll_repo_delete_vote_failed", result.Error, "vote_id", strings.TrimSpace(voteID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoteNotFound
	}
	return nil
}

func (r *Repository) DeleteVotesByTopic(ctx context.Context, topicID string) error {
	subquery := r.db.Model(&sessionModel{}).
		Select("id").
		Where("topic_id = ?", strings.TrimSpace(topicID))
	if err := r.db.WithContext(ctx).
		Where("session_id IN (?)", subquery).
		Delete(&voteModel{}).Error; err != nil {
		return r.logError("poll_repo_delete_votes_by_topic_failed", err, "topic_id", strings.TrimSpace(topicID))
	}
	return nil
}

func (r *Repository) DeleteVotesBySession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		Delete(&voteModel{}).Error; err != nil {
		return r.logError("poll_repo_delete_votes_by_session_failed", err, "session_id", strings.TrimSpace(sessionID))
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := pollOutboxModel{
		ID:        event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: event.OccurredAtUTC,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("poll_repo_append_outbox_failed", err, "event_id", event.EventID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []pollOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_pending_outbox_failed", err)
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, outbox.Message{
			ID:        row.ID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&pollOutboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		}).Error; err != nil {
		return r.logError("poll_repo_mark_outbox_published_failed", err, "outbox_id", strings.TrimSpace(outboxID))
	}
	return nil
}

// InTx runs fn inside one database transaction; every repository in the set
// shares the transaction handle.
func (r *Repository) InTx(ctx context.Context, fn func(tx ports.RepositorySet) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := NewRepository(tx, r.logger)
		return fn(ports.RepositorySet{
			Topics:   txRepo,
			Sessions: txRepo,
			Votes:    txRepo,
		})
	})
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/poll-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("poll repository operation failed", fields...)
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

type topicModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title;size:255;not null"`
	Description string    `gorm:"column:description;size:4000"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (topicModel) TableName() string {
	return "topics"
}

func topicModelFromEntity(topic entities.Topic) topicModel {
	return topicModel{
		ID:          strings.TrimSpace(topic.TopicID),
		Title:       topic.Title,
		Description: topic.Description,
		CreatedAt:   topic.CreatedAt.UTC(),
	}
}

func (m topicModel) toEntity() entities.Topic {
	return entities.Topic{
		TopicID:     m.ID,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

type sessionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	TopicID   string    `gorm:"column:topic_id;index;not null"`
	StartTime time.Time `gorm:"column:start_time;not null"`
	EndTime   time.Time `gorm:"column:end_time;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionModel) TableName() string {
	return "sessions"
}

func sessionModelFromEntity(session entities.Session) sessionModel {
	return sessionModel{
		ID:        strings.TrimSpace(session.SessionID),
		TopicID:   strings.TrimSpace(session.TopicID),
		StartTime: session.StartTime.UTC(),
		EndTime:   session.EndTime.UTC(),
		CreatedAt: session.CreatedAt.UTC(),
	}
}

func (m sessionModel) toEntity() entities.Session {
	return entities.Session{
		SessionID: m.ID,
		TopicID:   m.TopicID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		CreatedAt: m.CreatedAt,
	}
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex:idx_votes_voter_session;not null"`
	SessionID string    `gorm:"column:session_id;uniqueIndex:idx_votes_voter_session;index;not null"`
	Option    string    `gorm:"column:vote_option;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		VoterID:   strings.TrimSpace(vote.VoterID),
		SessionID: strings.TrimSpace(vote.SessionID),
		Option:    string(vote.Option),
		CreatedAt: vote.CreatedAt.UTC(),
		UpdatedAt: vote.UpdatedAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:    m.ID,
		VoterID:   m.VoterID,
		SessionID: m.SessionID,
		Option:    entities.VoteOption(m.Option),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type pollOutboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type;not null"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status;index;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (pollOutboxModel) TableName() string {
	return "poll_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.TopicRepository = (*Repository)(nil)
var _ ports.SessionRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.UnitOfWork = (*Repository)(nil)
