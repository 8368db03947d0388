package domain

import "time"

type Folder struct {
	ID        string
	ParentID  *string // nil for root folders
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

type File struct {
	ID        string
	FolderID  string
	Name      string
	CreatedAt time.Time
}

// Version is one uploaded revision of a File. The content lives in blob
// storage under ObjectKey.
type Version struct {
	ID          string
	FileID      string
	Number      string
	ObjectKey   string
	Size        int64
	ContentType string
	CreatedBy   string
	CreatedAt   time.Time
}
