// Package filedesk registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/filedesk/http/router.go -o api/filedesk
package filedesk

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/filedesk"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {"post": {"tags": ["Credentials"], "summary": "Register a credential", "responses": {"200": {"description": "message"}, "400": {"description": "validation_failed"}, "409": {"description": "email_taken"}}}},
        "/login": {"post": {"tags": ["Credentials"], "summary": "Log in", "responses": {"200": {"description": "userName, accessToken"}, "401": {"description": "invalid_credentials"}, "403": {"description": "locked_out, remainingTime"}}}},
        "/forgot-password": {"post": {"tags": ["Credentials"], "summary": "Email a reset link", "responses": {"200": {"description": "message"}, "404": {"description": "not_found"}, "500": {"description": "delivery_failed"}}}},
        "/verify-token/{token}": {"get": {"tags": ["Credentials"], "summary": "Check a reset token", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"200": {"description": "valid"}, "400": {"description": "invalid_token"}}}},
        "/reset-password": {"post": {"tags": ["Credentials"], "summary": "Redeem a reset token", "responses": {"200": {"description": "message"}, "400": {"description": "invalid_token"}}}},
        "/change-password": {"post": {"tags": ["Credentials"], "summary": "Change a password", "responses": {"200": {"description": "message"}, "401": {"description": "invalid_credentials"}, "404": {"description": "not_found"}}}},
        "/user-info/{email}": {"get": {"tags": ["Credentials"], "summary": "Profile of a credential", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "email, userName, tcNumber, birthDate"}, "404": {"description": "not_found"}}}},
        "/v1/tree": {"get": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Folder, file and version tree", "responses": {"200": {"description": "folders, files, versions"}}}},
        "/v1/folders": {"post": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Create a folder", "responses": {"201": {"description": "folder"}, "404": {"description": "parent not found"}}}},
        "/v1/folders/{id}": {
            "patch": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Rename a folder", "responses": {"204": {"description": "renamed"}}},
            "delete": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Delete a folder and everything under it", "responses": {"204": {"description": "deleted"}}}
        },
        "/v1/folders/{id}/files": {"post": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Create a file", "responses": {"201": {"description": "file"}}}},
        "/v1/files/{id}": {
            "patch": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Rename a file", "responses": {"204": {"description": "renamed"}}},
            "delete": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Delete a file and its versions", "responses": {"204": {"description": "deleted"}}}
        },
        "/v1/files/{id}/versions": {"post": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Upload a version", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "version"}, "413": {"description": "payload_too_large"}}}},
        "/v1/versions/{id}/download": {"get": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Download a version", "produces": ["application/octet-stream"], "responses": {"200": {"description": "content"}}}},
        "/v1/versions/{id}": {"delete": {"tags": ["Documents"], "security": [{"BearerAuth": []}], "summary": "Delete a version", "responses": {"204": {"description": "deleted"}}}},
        "/v1/units": {
            "get": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Units and personnel", "responses": {"200": {"description": "units, personnel"}}},
            "post": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Create a unit", "responses": {"201": {"description": "unit"}}}
        },
        "/v1/units/{id}": {
            "patch": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Rename a unit", "responses": {"204": {"description": "renamed"}}},
            "delete": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Delete a unit with its personnel", "responses": {"204": {"description": "deleted"}}}
        },
        "/v1/units/{id}/personnel": {"post": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Add a person to a unit", "responses": {"201": {"description": "person"}}}},
        "/v1/personnel/{id}": {
            "patch": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Update a person", "responses": {"204": {"description": "updated"}}},
            "delete": {"tags": ["Directory"], "security": [{"BearerAuth": []}], "summary": "Delete a person", "responses": {"204": {"description": "deleted"}}}
        },
        "/v1/applications": {
            "get": {"tags": ["Applications"], "security": [{"BearerAuth": []}], "summary": "List applications", "responses": {"200": {"description": "applications"}}},
            "post": {"tags": ["Applications"], "security": [{"BearerAuth": []}], "summary": "Register an application", "responses": {"201": {"description": "application"}}}
        },
        "/v1/applications/{id}": {"delete": {"tags": ["Applications"], "security": [{"BearerAuth": []}], "summary": "Delete an application", "responses": {"204": {"description": "deleted"}}}},
        "/v1/access": {
            "get": {"tags": ["Access"], "security": [{"BearerAuth": []}], "summary": "Access matrix", "responses": {"200": {"description": "rows"}}},
            "put": {"tags": ["Access"], "security": [{"BearerAuth": []}], "summary": "Grant or revoke access", "responses": {"204": {"description": "saved"}}}
        },
        "/v1/audit": {"get": {"tags": ["Audit"], "security": [{"BearerAuth": []}], "summary": "Search the audit log", "responses": {"200": {"description": "entries, totalPages, page"}}}},
        "/.well-known/jwks.json": {"get": {"tags": ["Keys"], "summary": "Token verification keys", "responses": {"200": {"description": "JWKS"}}}},
        "/livez": {"get": {"tags": ["Health"], "summary": "Liveness probe", "responses": {"200": {"description": "status, uptime, version"}}}},
        "/readyz": {"get": {"tags": ["Health"], "summary": "Readiness probe", "responses": {"200": {"description": "ready"}, "503": {"description": "degraded"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Access token from /login. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "filedesk Admin Console API",
	Description:      "Document tree, directory, application registry and access matrix administration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
