package model

// UploadedFile records session recordings and other user uploads stored
// behind the configured storage provider.
type UploadedFile struct {
	BaseModel
	UserID          uint    `gorm:"index;not null" json:"userId"`
	SessionID       *uint   `gorm:"index" json:"sessionId"`
	ObjectName      string  `gorm:"size:255;not null" json:"objectName"`
	OriginalName    string  `gorm:"size:255" json:"originalName"`
	ContentType     string  `gorm:"size:100" json:"contentType"`
	Size            int64   `gorm:"default:0" json:"size"`
	DurationSeconds float64 `gorm:"default:0" json:"durationSeconds"`
	URL             string  `gorm:"size:500" json:"url"`
	Purpose         string  `gorm:"size:50;default:'recording'" json:"purpose"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
