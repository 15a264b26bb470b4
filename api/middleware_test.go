package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *utils.JWTToken) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := utils.NewJWTToken(&utils.Config{SigningKey: "auth-test-signing-key"})
	server := &Server{tokens: tokens}

	router := gin.New()
	router.GET("/protected", server.authenticated(), func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "role": user.Role})
	})
	return router, tokens
}

func TestAuthenticated(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	get := func(authorization string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("valid bearer token passes the caller through", func(t *testing.T) {
		token, err := tokens.CreateToken(utils.TokenObject{UserID: 42, Role: "provider", Verified: true})
		require.NoError(t, err)

		w := get("Bearer " + token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"role":"provider"`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := get("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		token, err := tokens.CreateToken(utils.TokenObject{UserID: 42})
		require.NoError(t, err)

		w := get("Basic " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := utils.NewJWTToken(&utils.Config{SigningKey: "some-other-key"})
		token, err := other.CreateToken(utils.TokenObject{UserID: 42})
		require.NoError(t, err)

		w := get("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := get("Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
