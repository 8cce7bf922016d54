package scan

import (
	"Produce-Scan-Backend/domain"
	"Produce-Scan-Backend/entities"
	"Produce-Scan-Backend/internal/utils/storage"
	"Produce-Scan-Backend/pkg/vision"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type (
	// ScanService composes the vision adapter and the scan repository. It is
	// the error boundary: collaborator failures come back as result envelopes
	// with Success=false, never as errors to the HTTP layer.
	ScanService interface {
		StartSession(ctx context.Context, userID *uint) domain.StartSessionResult
		ScanSingle(ctx context.Context, imageData, sessionID string, userID *uint) domain.SingleScanResult
		ScanBatch(ctx context.Context, images []string, sessionID string, userID *uint) domain.BatchScanResult
		GetSessionResults(ctx context.Context, sessionID string, userID *uint, refresh bool) domain.SessionResult
		GetRecent(ctx context.Context, userID *uint, limit int) domain.RecentScansResult
		GetStorageTips(ctx context.Context, produceName string) domain.StorageTipsResult
		PurgeOldSessions(ctx context.Context, days int) error
	}

	scanService struct {
		scanRepository ScanRepository
		visionClient   vision.Client
		s3             storage.AwsS3
	}
)

func NewScanService(scanRepository ScanRepository, visionClient vision.Client, s3 storage.AwsS3) ScanService {
	return &scanService{
		scanRepository: scanRepository,
		visionClient:   visionClient,
		s3:             s3,
	}
}

func (s *scanService) StartSession(ctx context.Context, userID *uint) domain.StartSessionResult {
	sessionID, err := s.scanRepository.CreateSession(ctx, userID)
	if err != nil {
		return domain.StartSessionResult{Success: false, Error: err.Error()}
	}

	return domain.StartSessionResult{
		Success:   true,
		SessionID: sessionID,
		UserID:    userID,
	}
}

func (s *scanService) ScanSingle(ctx context.Context, imageData, sessionID string, userID *uint) domain.SingleScanResult {
	analysis, err := s.visionClient.Analyze(ctx, imageData)
	if err != nil {
		return domain.SingleScanResult{Success: false, Error: err.Error()}
	}

	record := s.newScanEntity(analysis, sessionID, userID)
	record.ImageURL = s.archiveImage(ctx, record.ScanID, imageData)

	if err := s.scanRepository.SaveScan(ctx, record); err != nil {
		return domain.SingleScanResult{Success: false, Error: err.Error()}
	}

	data := domain.ScanRecordFromEntity(record)
	return domain.SingleScanResult{Success: true, Data: &data}
}

func (s *scanService) ScanBatch(ctx context.Context, images []string, sessionID string, userID *uint) domain.BatchScanResult {
	batch, err := s.visionClient.AnalyzeBatch(ctx, images)
	if err != nil {
		return domain.BatchScanResult{Success: false, Error: err.Error()}
	}

	saved := make([]domain.ScanRecord, 0, len(batch.Results))
	for i, analysis := range batch.Results {
		record := s.newScanEntity(analysis, sessionID, userID)
		record.ImageURL = s.archiveImage(ctx, record.ScanID, images[i])

		if err := s.scanRepository.SaveScan(ctx, record); err != nil {
			return domain.BatchScanResult{Success: false, Error: err.Error()}
		}
		saved = append(saved, domain.ScanRecordFromEntity(record))
	}

	// One aggregate write per batch, straight from the adapter summary
	summary := batch.Summary
	if _, err := s.scanRepository.UpdateSessionAggregate(
		ctx, sessionID,
		summary.TotalScanned, summary.ExpiringSoonCount, summary.ExpiredCount,
	); err != nil {
		return domain.BatchScanResult{Success: false, Error: err.Error()}
	}

	return domain.BatchScanResult{
		Success:   true,
		SessionID: sessionID,
		Scans:     saved,
		Summary: &domain.BatchScanSummary{
			TotalScanned:      summary.TotalScanned,
			ExpiringSoonCount: summary.ExpiringSoonCount,
			ExpiredCount:      summary.ExpiredCount,
			HealthyCount:      summary.TotalScanned - summary.ExpiringSoonCount - summary.ExpiredCount,
		},
	}
}

func (s *scanService) GetSessionResults(ctx context.Context, sessionID string, userID *uint, refresh bool) domain.SessionResult {
	session, err := s.scanRepository.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SessionResult{
				Success: false,
				Error:   fmt.Sprintf("Session %s not found", sessionID),
			}
		}
		return domain.SessionResult{Success: false, Error: err.Error()}
	}

	// Anonymous sessions are not protected; the check only fires when both
	// the caller and the session have an owner and they differ.
	if userID != nil && session.UserID != nil && *session.UserID != *userID {
		return domain.SessionResult{
			Success: false,
			Error:   domain.ErrUnauthorizedSession.Error(),
		}
	}

	if refresh {
		if recomputed, err := s.scanRepository.RecomputeSessionAggregate(ctx, sessionID); err == nil {
			session = recomputed
		}
	}

	scans, err := s.scanRepository.GetSessionScans(ctx, sessionID)
	if err != nil {
		return domain.SessionResult{Success: false, Error: err.Error()}
	}

	records := make([]domain.ScanRecord, 0, len(scans))
	for _, scan := range scans {
		records = append(records, domain.ScanRecordFromEntity(scan))
	}

	return domain.SessionResult{
		Success: true,
		Session: session,
		Scans:   records,
	}
}

func (s *scanService) GetRecent(ctx context.Context, userID *uint, limit int) domain.RecentScansResult {
	scans, err := s.scanRepository.GetRecentScans(ctx, userID, limit)
	if err != nil {
		return domain.RecentScansResult{Success: false, Error: err.Error()}
	}

	records := make([]domain.ScanRecord, 0, len(scans))
	for _, scan := range scans {
		records = append(records, domain.ScanRecordFromEntity(scan))
	}

	return domain.RecentScansResult{
		Success: true,
		Count:   len(records),
		Scans:   records,
	}
}

func (s *scanService) GetStorageTips(ctx context.Context, produceName string) domain.StorageTipsResult {
	recommendations, err := s.visionClient.RecommendStorage(ctx, produceName)
	if err != nil {
		return domain.StorageTipsResult{Success: false, Error: err.Error()}
	}

	return domain.StorageTipsResult{
		Success:         true,
		Produce:         produceName,
		Recommendations: recommendations,
	}
}

func (s *scanService) PurgeOldSessions(ctx context.Context, days int) error {
	return s.scanRepository.PurgeSessionsOlderThan(ctx, days)
}

func (s *scanService) newScanEntity(analysis domain.ProduceAnalysis, sessionID string, userID *uint) *entities.ProduceScan {
	scan := &entities.ProduceScan{
		ScanID:         NewScanToken(),
		ProduceName:    analysis.ProduceName,
		ShelfLifeDays:  analysis.ShelfLifeDays,
		IsExpiringSoon: analysis.IsExpiringSoon,
		IsExpired:      analysis.IsExpired,
		Notes:          analysis.Notes,
		UserID:         userID,
	}
	if sessionID != "" {
		scan.SessionID = &sessionID
	}
	return scan
}

// archiveImage stores the submitted image on S3 when archival is configured.
// Failures are logged and swallowed, a scan never fails because of archival.
func (s *scanService) archiveImage(ctx context.Context, scanID, imageData string) string {
	if !s.s3.Enabled() {
		return ""
	}

	if idx := strings.Index(imageData, ","); idx >= 0 {
		imageData = imageData[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		fmt.Printf("Error decoding image for archival: %v\n", err)
		return ""
	}

	url, err := s.s3.UploadBytes(ctx, fmt.Sprintf("scans/scan-%s.jpg", scanID), raw, "image/jpeg")
	if err != nil {
		fmt.Printf("Error archiving scan image: %v\n", err)
		return ""
	}
	return url
}
