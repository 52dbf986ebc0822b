package models

import "time"

// PitchDocument is a gated deck owned by a venture. The binary payload lives
// on disk under UPLOAD_PATH; rows only carry the reference and metadata.
// Mutable only while the owning venture is draft or rejected.
type PitchDocument struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	VentureID        int        `gorm:"column:venture_id" json:"venture_id"`
	UploadedBy       int        `gorm:"column:uploaded_by" json:"uploaded_by"`
	OriginalFilename string     `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string     `gorm:"column:stored_filename" json:"stored_filename"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	Summary          *string    `gorm:"column:summary" json:"summary,omitempty"`
	RoundName        *string    `gorm:"column:round_name" json:"round_name,omitempty"`
	RaisingAmount    *float64   `gorm:"column:raising_amount" json:"raising_amount,omitempty"`
	UploadedAt       time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Venture Venture `gorm:"foreignKey:VentureID;references:VentureID" json:"venture,omitempty"`
}

// TableName specifies the table name for PitchDocument.
func (PitchDocument) TableName() string {
	return "pitch_documents"
}

func (d *PitchDocument) GetFileSizeInMB() float64 {
	return float64(d.FileSize) / (1024 * 1024)
}
