package desksdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated handle on the /v1 endpoints.
type Session struct {
	client      *SDKClient
	accessToken string
	userName    string
}

func (s *Session) AccessToken() string { return s.accessToken }
func (s *Session) UserName() string    { return s.userName }

// sendJSON issues an authenticated request with an optional JSON body and
// decodes the reply into out, or checks for 204 when out is nil.
func (s *Session) sendJSON(ctx context.Context, method, path string, in, out any, expected int) error {
	var (
		body    io.Reader
		headers map[string]string
		err     error
	)
	if in != nil {
		body, headers, err = jsonBody(in)
		if err != nil {
			return err
		}
	}

	resp, err := s.doAuthRequest(ctx, method, path, body, headers)
	if err != nil {
		return err
	}
	if expected == http.StatusNoContent {
		return checkStatusNoContent(resp)
	}
	return decodeJSON(resp, out, expected)
}

// ============================================================================
// Documents
// ============================================================================

func (s *Session) GetTree(ctx context.Context) (*TreeResponse, error) {
	var out TreeResponse
	if err := s.sendJSON(ctx, http.MethodGet, "/v1/tree", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateFolder(ctx context.Context, name string, parentID *string) (*Folder, error) {
	var out Folder
	req := CreateFolderRequest{Name: name, ParentID: parentID}
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/folders", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RenameFolder(ctx context.Context, id, name string) error {
	return s.sendJSON(ctx, http.MethodPatch, "/v1/folders/"+url.PathEscape(id), RenameRequest{Name: name}, nil, http.StatusNoContent)
}

func (s *Session) DeleteFolder(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/folders/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) CreateFile(ctx context.Context, folderID, name string) (*File, error) {
	var out File
	path := "/v1/folders/" + url.PathEscape(folderID) + "/files"
	if err := s.sendJSON(ctx, http.MethodPost, path, CreateFileRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RenameFile(ctx context.Context, id, name string) error {
	return s.sendJSON(ctx, http.MethodPatch, "/v1/files/"+url.PathEscape(id), RenameRequest{Name: name}, nil, http.StatusNoContent)
}

func (s *Session) DeleteFile(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/files/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) DeleteVersion(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/versions/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Directory
// ============================================================================

func (s *Session) GetDirectory(ctx context.Context) (*DirectoryResponse, error) {
	var out DirectoryResponse
	if err := s.sendJSON(ctx, http.MethodGet, "/v1/units", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateUnit(ctx context.Context, name string, parentID *string) (*Unit, error) {
	var out Unit
	req := CreateUnitRequest{Name: name, ParentID: parentID}
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/units", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RenameUnit(ctx context.Context, id, name string) error {
	return s.sendJSON(ctx, http.MethodPatch, "/v1/units/"+url.PathEscape(id), RenameRequest{Name: name}, nil, http.StatusNoContent)
}

func (s *Session) DeleteUnit(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/units/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) AddPerson(ctx context.Context, unitID, name, registryNo string) (*Person, error) {
	var out Person
	path := "/v1/units/" + url.PathEscape(unitID) + "/personnel"
	if err := s.sendJSON(ctx, http.MethodPost, path, PersonRequest{Name: name, RegistryNo: registryNo}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdatePerson(ctx context.Context, id, name, registryNo string) error {
	return s.sendJSON(ctx, http.MethodPatch, "/v1/personnel/"+url.PathEscape(id),
		PersonRequest{Name: name, RegistryNo: registryNo}, nil, http.StatusNoContent)
}

func (s *Session) DeletePerson(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/personnel/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Applications and Access
// ============================================================================

func (s *Session) ListApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := s.sendJSON(ctx, http.MethodGet, "/v1/applications", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateApplication(ctx context.Context, req CreateApplicationRequest) (*Application, error) {
	var out Application
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/applications", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteApplication(ctx context.Context, id string) error {
	return s.sendJSON(ctx, http.MethodDelete, "/v1/applications/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) GetAccessMatrix(ctx context.Context) ([]AccessRow, error) {
	var out []AccessRow
	if err := s.sendJSON(ctx, http.MethodGet, "/v1/access", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) SetAccess(ctx context.Context, personID, applicationID string, granted bool) error {
	req := SetAccessRequest{PersonID: personID, ApplicationID: applicationID, Granted: granted}
	return s.sendJSON(ctx, http.MethodPut, "/v1/access", req, nil, http.StatusNoContent)
}

// ============================================================================
// Audit
// ============================================================================

// QueryAudit fetches one page of the audit log. Zero page or limit leave
// the server defaults in place.
func (s *Session) QueryAudit(ctx context.Context, page, limit int, search string) (*AuditPageResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/v1/audit"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out AuditPageResponse
	if err := s.sendJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Versions
// ============================================================================

// Download streams a version's content. The caller closes the reader.
func (s *Session) Download(ctx context.Context, versionID string) (io.ReadCloser, string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/versions/"+url.PathEscape(versionID)+"/download", nil, nil)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return nil, "", parseErrorResponse(resp, b)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// UploadVersion posts a new version of a file as a multipart form.
func (s *Session) UploadVersion(ctx context.Context, fileID, versionNo, filename string, content io.Reader) (*Version, error) {
	body, contentType, err := multipartBody(versionNo, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/files/"+url.PathEscape(fileID)+"/versions", body,
		map[string]string{"Content-Type": contentType})
	if err != nil {
		return nil, err
	}

	var out Version
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
