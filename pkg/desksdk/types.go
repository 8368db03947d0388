package desksdk

import (
	"time"

	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`

	// RemainingTime is set on lockout responses, in milliseconds.
	RemainingTime int64 `json:"remainingTime,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Credential Types
// ============================================================================

// RegisterRequest keeps the field names of the console's original web
// client: tcNumber is the national id, isimSoyisim the full name and
// dogumTarihi the birth date (YYYY-MM-DD).
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"tcNumber"`
	FullName   string `json:"isimSoyisim"`
	BirthDate  string `json:"dogumTarihi"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserName    string `json:"userName"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyTokenResponse struct {
	Valid bool `json:"valid"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
	Email       string `json:"email"`
}

type UserInfoResponse struct {
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	TCNumber  string `json:"tcNumber"`
	BirthDate string `json:"birthDate"`
}

// ============================================================================
// Document Types
// ============================================================================

type Folder struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parentId"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type File struct {
	ID        string    `json:"id"`
	FolderID  string    `json:"folderId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Version struct {
	ID          string    `json:"id"`
	FileID      string    `json:"fileId"`
	Number      string    `json:"versionNo"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TreeResponse struct {
	Folders  []Folder  `json:"folders"`
	Files    []File    `json:"files"`
	Versions []Version `json:"versions"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
}

type RenameRequest struct {
	Name string `json:"name"`
}

type CreateFileRequest struct {
	Name string `json:"name"`
}

// ============================================================================
// Directory Types
// ============================================================================

type Unit struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentId"`
	Name     string  `json:"name"`
}

type Person struct {
	ID         string `json:"id"`
	UnitID     string `json:"unitId"`
	Name       string `json:"name"`
	RegistryNo string `json:"registryNo"`
}

type DirectoryResponse struct {
	Units     []Unit   `json:"units"`
	Personnel []Person `json:"personnel"`
}

type CreateUnitRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"`
}

type PersonRequest struct {
	Name       string `json:"name"`
	RegistryNo string `json:"registryNo"`
}

// ============================================================================
// Application and Access Types
// ============================================================================

type Application struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Description string `json:"description"`
}

type CreateApplicationRequest struct {
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Description string `json:"description"`
}

type AccessRow struct {
	PersonID        string `json:"personId"`
	RegistryNo      string `json:"registryNo"`
	PersonName      string `json:"personName"`
	UnitName        string `json:"unitName"`
	ApplicationID   string `json:"applicationId"`
	ApplicationName string `json:"applicationName"`
	Granted         bool   `json:"granted"`
}

type SetAccessRequest struct {
	PersonID      string `json:"personId"`
	ApplicationID string `json:"applicationId"`
	Granted       bool   `json:"granted"`
}

// ============================================================================
// Audit Types
// ============================================================================

type AuditEntry struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	Table       string    `json:"table"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type AuditPageResponse struct {
	Entries    []AuditEntry `json:"entries"`
	TotalPages int          `json:"totalPages"`
	Page       int          `json:"page"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	Blobs    string `json:"blobs"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// JWKSResponse is the published key set.
type JWKSResponse jwtx.JWKS
