package http

import (
	"net/http"

	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
)

// JWKSHandler publishes the keys that verify console access tokens.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify access tokens.
//	@Tags			Keys
//	@Produce		json
//	@Success		200	{object}	desksdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, desksdk.JWKSResponse(keys.PublicJWKS()))
	}
}
