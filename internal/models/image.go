package models

import "time"

// Image represents a stored image record
type Image struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Filename     string    `json:"filename" gorm:"not null;uniqueIndex"`
	OriginalName string    `json:"original_name" gorm:"not null"`
	Size         int64     `json:"size" gorm:"not null"`
	UploadTime   time.Time `json:"upload_time" gorm:"not null;autoCreateTime"`
	FileType     string    `json:"file_type" gorm:"not null"`
}

// TableName keeps the table name stable regardless of GORM pluralization
// settings.
func (Image) TableName() string {
	return "images"
}
