package domain

import (
	"errors"

	"Produce-Scan-Backend/entities"
)

var (
	MessageSuccessStartSession = "scan session started"
	MessageSuccessStorageTips  = "storage tips retrieved"

	MessageFailedStartSession = "failed to start scan session"
	MessageFailedScanSingle   = "failed to scan produce"
	MessageFailedScanBatch    = "failed to scan produce batch"
	MessageFailedStorageTips  = "failed to retrieve storage tips"

	ErrSessionNotFound        = errors.New("session not found")
	ErrUnauthorizedSession    = errors.New("Unauthorized access to this session")
	ErrEmptyModelResponse     = errors.New("AI model returned empty response")
	ErrVisionProcessingFailed = errors.New("vision model processing failed")
)

type (
	// ProduceAnalysis is the validated result of one vision-model call.
	ProduceAnalysis struct {
		ProduceName    string `json:"produce_name"`
		ShelfLifeDays  int    `json:"shelf_life_days"`
		IsExpiringSoon bool   `json:"is_expiring_soon"`
		IsExpired      bool   `json:"is_expired"`
		Notes          string `json:"notes"`
	}

	BatchSummary struct {
		TotalScanned      int `json:"total_scanned"`
		ExpiringSoonCount int `json:"expiring_soon_count"`
		ExpiredCount      int `json:"expired_count"`
	}

	// BatchAnalysis preserves input cardinality: len(Results) always equals
	// the number of submitted images, failed images included as sentinels.
	BatchAnalysis struct {
		Results []ProduceAnalysis `json:"results"`
		Summary BatchSummary      `json:"summary"`
	}

	SingleScanRequest struct {
		ImageData string `json:"image_data" validate:"required"`
		SessionID string `json:"session_id" validate:"required"`
	}

	BatchScanRequest struct {
		Images    []string `json:"images" validate:"required,min=1"`
		SessionID string   `json:"session_id" validate:"required"`
	}

	StorageTipsRequest struct {
		ProduceName string `json:"produce_name" validate:"required"`
	}

	StartSessionResult struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id,omitempty"`
		UserID    *uint  `json:"user_id,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	ScanRecord struct {
		ID             uint    `json:"id"`
		ScanID         string  `json:"scan_id"`
		SessionID      *string `json:"session_id,omitempty"`
		UserID         *uint   `json:"user_id,omitempty"`
		ProduceName    string  `json:"produce_name"`
		ShelfLifeDays  int     `json:"shelf_life_days"`
		IsExpiringSoon bool    `json:"is_expiring_soon"`
		IsExpired      bool    `json:"is_expired"`
		Notes          string  `json:"notes"`
		ImageURL       string  `json:"image_url,omitempty"`
		ScannedAt      string  `json:"scanned_at"`
	}

	SingleScanResult struct {
		Success bool        `json:"success"`
		Data    *ScanRecord `json:"data,omitempty"`
		Error   string      `json:"error,omitempty"`
	}

	BatchScanSummary struct {
		TotalScanned      int `json:"total_scanned"`
		ExpiringSoonCount int `json:"expiring_soon_count"`
		ExpiredCount      int `json:"expired_count"`
		HealthyCount      int `json:"healthy_count"`
	}

	BatchScanResult struct {
		Success   bool              `json:"success"`
		SessionID string            `json:"session_id,omitempty"`
		Scans     []ScanRecord      `json:"scans,omitempty"`
		Summary   *BatchScanSummary `json:"summary,omitempty"`
		Error     string            `json:"error,omitempty"`
	}

	SessionResult struct {
		Success bool                  `json:"success"`
		Session *entities.ScanSession `json:"session,omitempty"`
		Scans   []ScanRecord          `json:"scans"`
		Error   string                `json:"error,omitempty"`
	}

	RecentScansResult struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		Scans   []ScanRecord `json:"scans"`
		Error   string       `json:"error,omitempty"`
	}

	StorageTipsResult struct {
		Success         bool   `json:"success"`
		Produce         string `json:"produce,omitempty"`
		Recommendations string `json:"recommendations,omitempty"`
		Error           string `json:"error,omitempty"`
	}
)

// ScanRecordFromEntity flattens a persisted scan into the wire representation
// used by every scan endpoint.
func ScanRecordFromEntity(scan *entities.ProduceScan) ScanRecord {
	return ScanRecord{
		ID:             scan.ID,
		ScanID:         scan.ScanID,
		SessionID:      scan.SessionID,
		UserID:         scan.UserID,
		ProduceName:    scan.ProduceName,
		ShelfLifeDays:  scan.ShelfLifeDays,
		IsExpiringSoon: scan.IsExpiringSoon,
		IsExpired:      scan.IsExpired,
		Notes:          scan.Notes,
		ImageURL:       scan.ImageURL,
		ScannedAt:      scan.ScannedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
