package scan

import (
	"Produce-Scan-Backend/domain"
	"Produce-Scan-Backend/entities"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ScanRepository interface {
		CreateSession(ctx context.Context, userID *uint) (string, error)
		SaveScan(ctx context.Context, scan *entities.ProduceScan) error
		UpdateSessionAggregate(ctx context.Context, sessionID string, total, expiringSoon, expired int) (*entities.ScanSession, error)
		RecomputeSessionAggregate(ctx context.Context, sessionID string) (*entities.ScanSession, error)
		GetSession(ctx context.Context, sessionID string) (*entities.ScanSession, error)
		GetSessionScans(ctx context.Context, sessionID string) ([]*entities.ProduceScan, error)
		GetRecentScans(ctx context.Context, userID *uint, limit int) ([]*entities.ProduceScan, error)
		PurgeSessionsOlderThan(ctx context.Context, days int) error
	}

	scanRepository struct {
		db *gorm.DB
	}
)

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

// NewSessionToken returns a short opaque session identifier, the first 8
// characters of a random UUID.
func NewSessionToken() string {
	return uuid.NewString()[:8]
}

// NewScanToken returns a short opaque scan identifier, the first 12
// characters of a random UUID.
func NewScanToken() string {
	return uuid.NewString()[:12]
}

func (r *scanRepository) CreateSession(ctx context.Context, userID *uint) (string, error) {
	session := &entities.ScanSession{
		SessionID: NewSessionToken(),
		UserID:    userID,
	}

	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		if !isUniqueViolation(err) {
			return "", fmt.Errorf("database error creating session: %w", err)
		}
		// Token collided, regenerate once before giving up
		session.ID = 0
		session.SessionID = NewSessionToken()
		if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
			return "", fmt.Errorf("database error creating session: %w", err)
		}
	}

	return session.SessionID, nil
}

func (r *scanRepository) SaveScan(ctx context.Context, scan *entities.ProduceScan) error {
	if err := r.db.WithContext(ctx).Create(scan).Error; err != nil {
		if !isUniqueViolation(err) {
			return fmt.Errorf("database error saving scan: %w", err)
		}
		scan.ID = 0
		scan.ScanID = NewScanToken()
		if err := r.db.WithContext(ctx).Create(scan).Error; err != nil {
			return fmt.Errorf("database error saving scan: %w", err)
		}
	}
	return nil
}

func (r *scanRepository) UpdateSessionAggregate(ctx context.Context, sessionID string, total, expiringSoon, expired int) (*entities.ScanSession, error) {
	var session entities.ScanSession

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent batch completions on one session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			First(&session).Error; err != nil {
			return err
		}

		session.TotalScanned = total
		session.ExpiringSoonCount = expiringSoon
		session.ExpiredCount = expired

		return tx.Model(&entities.ScanSession{}).
			Where("session_id = ?", sessionID).
			Updates(map[string]interface{}{
				"total_scanned":       total,
				"expiring_soon_count": expiringSoon,
				"expired_count":       expired,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("database error updating session: %w", err)
	}

	return &session, nil
}

func (r *scanRepository) RecomputeSessionAggregate(ctx context.Context, sessionID string) (*entities.ScanSession, error) {
	var total, expiringSoon, expired int64

	if err := r.db.WithContext(ctx).Model(&entities.ProduceScan{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error updating session: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&entities.ProduceScan{}).
		Where("session_id = ? AND is_expiring_soon = ?", sessionID, true).
		Count(&expiringSoon).Error; err != nil {
		return nil, fmt.Errorf("database error updating session: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&entities.ProduceScan{}).
		Where("session_id = ? AND is_expired = ?", sessionID, true).
		Count(&expired).Error; err != nil {
		return nil, fmt.Errorf("database error updating session: %w", err)
	}

	return r.UpdateSessionAggregate(ctx, sessionID, int(total), int(expiringSoon), int(expired))
}

func (r *scanRepository) GetSession(ctx context.Context, sessionID string) (*entities.ScanSession, error) {
	var session entities.ScanSession
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("database error fetching session: %w", err)
	}
	return &session, nil
}

func (r *scanRepository) GetSessionScans(ctx context.Context, sessionID string) ([]*entities.ProduceScan, error) {
	var scans []*entities.ProduceScan
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("database error fetching scans: %w", err)
	}
	return scans, nil
}

func (r *scanRepository) GetRecentScans(ctx context.Context, userID *uint, limit int) ([]*entities.ProduceScan, error) {
	var scans []*entities.ProduceScan

	query := r.db.WithContext(ctx).Model(&entities.ProduceScan{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Order("scanned_at desc").Limit(limit).Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("database error fetching recent scans: %w", err)
	}
	return scans, nil
}

func (r *scanRepository) PurgeSessionsOlderThan(ctx context.Context, days int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	// Scans go with their sessions via the FK cascade
	if err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&entities.ScanSession{}).Error; err != nil {
		return fmt.Errorf("database error deleting old sessions: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
