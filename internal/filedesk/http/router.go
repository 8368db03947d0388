package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/blob"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"

	_ "github.com/aussiebroadwan/filedesk/api/filedesk" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultMaxUploadBytes bounds a version upload when MaxUploadBytes is unset.
const DefaultMaxUploadBytes int64 = 32 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	blobs blob.Store

	AuthService        *service.AuthService
	TokenService       *service.TokenService
	DocumentService    *service.DocumentService
	DirectoryService   *service.DirectoryService
	ApplicationService *service.ApplicationService
	AccessService      *service.AccessService
	AuditService       *service.AuditService

	// AuthLimit throttles register, forgot and reset per IP. LoginLimit
	// throttles password checks per IP and email and must leave room for
	// the account lockout to answer first. APILimit throttles authenticated
	// mutations. All must be set before ApplyRoutes.
	AuthLimit  httpx.RateLimitConfig
	LoginLimit httpx.RateLimitConfig
	APILimit   httpx.RateLimitConfig

	MaxUploadBytes int64
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	blobs blob.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		keys:           keys,
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		store:          st,
		blobs:          blobs,
		AuthLimit:      httpx.StrictLimit,
		LoginLimit:     httpx.LoginLimit,
		APILimit:       httpx.ModerateLimit,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCredentials()
	r.registerDocuments()
	r.registerDirectory()
	r.registerApplications()
	r.registerAccess()
	r.registerAudit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			filedesk Admin Console API
//	@version		0.1.0
//	@description	Document tree, directory, application registry and access matrix administration.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/filedesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from /login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps an authenticated /v1 handler.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerCredentials() {
	h := &CredentialsHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
	}

	// Login is throttled per IP and email on top of the account lockout
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.LoginLimit, "email"),
		),
	)
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)
	r.Mux.Handle("POST /forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)
	r.Mux.Handle("POST /reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIP(r.AuthLimit),
		),
	)
	r.Mux.Handle("POST /change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.RateLimitByIPAndJSONField(r.LoginLimit, "email"),
		),
	)
	r.Mux.Handle("GET /verify-token/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /user-info/{email}",
		httpx.Chain(http.HandlerFunc(h.HandleUserInfo),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{
		DocumentService: r.DocumentService,
		MaxUploadBytes:  r.MaxUploadBytes,
	}

	r.Mux.Handle("GET /v1/tree", r.secured(h.HandleTree, httpx.LenientLimit))

	r.Mux.Handle("POST /v1/folders", r.secured(h.HandleCreateFolder, r.APILimit))
	r.Mux.Handle("PATCH /v1/folders/{id}", r.secured(h.HandleRenameFolder, r.APILimit))
	r.Mux.Handle("DELETE /v1/folders/{id}", r.secured(h.HandleDeleteFolder, r.APILimit))

	r.Mux.Handle("POST /v1/folders/{id}/files", r.secured(h.HandleCreateFile, r.APILimit))
	r.Mux.Handle("PATCH /v1/files/{id}", r.secured(h.HandleRenameFile, r.APILimit))
	r.Mux.Handle("DELETE /v1/files/{id}", r.secured(h.HandleDeleteFile, r.APILimit))

	r.Mux.Handle("POST /v1/files/{id}/versions", r.secured(h.HandleUploadVersion, r.APILimit))
	r.Mux.Handle("GET /v1/versions/{id}/download", r.secured(h.HandleDownloadVersion, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/versions/{id}", r.secured(h.HandleDeleteVersion, r.APILimit))
}

func (r *Router) registerDirectory() {
	h := &DirectoryHandler{DirectoryService: r.DirectoryService}

	r.Mux.Handle("GET /v1/units", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/units", r.secured(h.HandleCreateUnit, r.APILimit))
	r.Mux.Handle("PATCH /v1/units/{id}", r.secured(h.HandleRenameUnit, r.APILimit))
	r.Mux.Handle("DELETE /v1/units/{id}", r.secured(h.HandleDeleteUnit, r.APILimit))

	r.Mux.Handle("POST /v1/units/{id}/personnel", r.secured(h.HandleAddPerson, r.APILimit))
	r.Mux.Handle("PATCH /v1/personnel/{id}", r.secured(h.HandleUpdatePerson, r.APILimit))
	r.Mux.Handle("DELETE /v1/personnel/{id}", r.secured(h.HandleDeletePerson, r.APILimit))
}

func (r *Router) registerApplications() {
	h := &ApplicationsHandler{ApplicationService: r.ApplicationService}

	r.Mux.Handle("GET /v1/applications", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/applications", r.secured(h.HandleCreate, r.APILimit))
	r.Mux.Handle("DELETE /v1/applications/{id}", r.secured(h.HandleDelete, r.APILimit))
}

func (r *Router) registerAccess() {
	h := &AccessHandler{AccessService: r.AccessService}

	r.Mux.Handle("GET /v1/access", r.secured(h.HandleMatrix, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/access", r.secured(h.HandleSet, r.APILimit))
}

func (r *Router) registerAudit() {
	h := &AuditHandler{AuditService: r.AuditService}

	r.Mux.Handle("GET /v1/audit", r.secured(h.HandleQuery, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.blobs, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
