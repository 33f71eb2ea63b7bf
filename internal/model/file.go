package model

import "time"

// File is an uploaded resume.
// Content is set when no object storage is configured, otherwise the bytes live
// in the bucket under StorageObjectName.
type File struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	Content           []byte    `json:"-"`
	Extension         string    `json:"extension"`
	StorageObjectName string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
}
