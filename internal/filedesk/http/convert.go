package http

import (
	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
)

func toFolder(f domain.Folder) desksdk.Folder {
	return desksdk.Folder{
		ID:        f.ID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
	}
}

func toFile(f domain.File) desksdk.File {
	return desksdk.File{ID: f.ID, FolderID: f.FolderID, Name: f.Name, CreatedAt: f.CreatedAt}
}

func toVersion(v domain.Version) desksdk.Version {
	return desksdk.Version{
		ID:          v.ID,
		FileID:      v.FileID,
		Number:      v.Number,
		Size:        v.Size,
		ContentType: v.ContentType,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt,
	}
}

func toTree(t service.Tree) desksdk.TreeResponse {
	out := desksdk.TreeResponse{
		Folders:  make([]desksdk.Folder, 0, len(t.Folders)),
		Files:    make([]desksdk.File, 0, len(t.Files)),
		Versions: make([]desksdk.Version, 0, len(t.Versions)),
	}
	for _, f := range t.Folders {
		out.Folders = append(out.Folders, toFolder(f))
	}
	for _, f := range t.Files {
		out.Files = append(out.Files, toFile(f))
	}
	for _, v := range t.Versions {
		out.Versions = append(out.Versions, toVersion(v))
	}
	return out
}

func toUnit(u domain.Unit) desksdk.Unit {
	return desksdk.Unit{ID: u.ID, ParentID: u.ParentID, Name: u.Name}
}

func toPerson(p domain.Person) desksdk.Person {
	return desksdk.Person{ID: p.ID, UnitID: p.UnitID, Name: p.Name, RegistryNo: p.RegistryNo}
}

func toDirectory(d service.Directory) desksdk.DirectoryResponse {
	out := desksdk.DirectoryResponse{
		Units:     make([]desksdk.Unit, 0, len(d.Units)),
		Personnel: make([]desksdk.Person, 0, len(d.Personnel)),
	}
	for _, u := range d.Units {
		out.Units = append(out.Units, toUnit(u))
	}
	for _, p := range d.Personnel {
		out.Personnel = append(out.Personnel, toPerson(p))
	}
	return out
}

func toApplication(a domain.Application) desksdk.Application {
	return desksdk.Application{ID: a.ID, Name: a.Name, Endpoint: a.Endpoint, Description: a.Description}
}

func toAccessRow(r domain.AccessRow) desksdk.AccessRow {
	return desksdk.AccessRow{
		PersonID:        r.PersonID,
		RegistryNo:      r.RegistryNo,
		PersonName:      r.PersonName,
		UnitName:        r.UnitName,
		ApplicationID:   r.ApplicationID,
		ApplicationName: r.ApplicationName,
		Granted:         r.Granted,
	}
}

func toAuditPage(p service.AuditPage) desksdk.AuditPageResponse {
	out := desksdk.AuditPageResponse{
		Entries:    make([]desksdk.AuditEntry, 0, len(p.Entries)),
		TotalPages: p.TotalPages,
		Page:       p.Page,
	}
	for _, e := range p.Entries {
		out.Entries = append(out.Entries, desksdk.AuditEntry{
			ID:          e.ID,
			Description: e.Description,
			Kind:        string(e.Kind),
			Table:       e.Table,
			Actor:       e.Actor,
			OccurredAt:  e.OccurredAt,
		})
	}
	return out
}
