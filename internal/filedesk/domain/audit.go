package domain

import "time"

type AuditKind string

const (
	AuditCreate   AuditKind = "create"
	AuditRename   AuditKind = "rename"
	AuditUpdate   AuditKind = "update"
	AuditDelete   AuditKind = "delete"
	AuditUpload   AuditKind = "upload"
	AuditDownload AuditKind = "download"
	AuditFailure  AuditKind = "failure"
)

// Audit table names, matching the storage tables an entry describes.
const (
	TableFolders      = "folders"
	TableFiles        = "files"
	TableVersions     = "versions"
	TableUnits        = "units"
	TablePersonnel    = "personnel"
	TableApplications = "applications"
	TableAccess       = "access_grants"
)

type AuditEntry struct {
	ID          string
	Description string
	Kind        AuditKind
	Table       string
	Actor       string
	OccurredAt  time.Time
}
