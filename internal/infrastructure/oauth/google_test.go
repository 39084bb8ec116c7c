package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jhoicas/Marketplace-api/pkg/config"
)

func TestAuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(config.GoogleConfig{ClientID: "cid", ClientSecret: "s", RedirectURL: "http://localhost/cb"})
	u, err := url.Parse(p.AuthCodeURL("st4te"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "st4te", u.Query().Get("state"))
	assert.Equal(t, "cid", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost/cb", u.Query().Get("redirect_uri"))
}

func fakeGoogle(t *testing.T, profile string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(profile))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testProvider(srv *httptest.Server) *GoogleProvider {
	p := NewGoogleProvider(config.GoogleConfig{ClientID: "cid", ClientSecret: "s"})
	p.cfg.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestExchange(t *testing.T) {
	srv := fakeGoogle(t, `{"id":"g-1","email":"ana@gmail.com","verified_email":true,"name":"Ana"}`)
	prof, err := testProvider(srv).Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "g-1", prof.ID)
	assert.Equal(t, "ana@gmail.com", prof.Email)
	assert.Equal(t, "Ana", prof.Name)
}

func TestExchange_EmailNoVerificado(t *testing.T) {
	srv := fakeGoogle(t, `{"id":"g-1","email":"ana@gmail.com","verified_email":false}`)
	_, err := testProvider(srv).Exchange(context.Background(), "code")
	assert.Error(t, err)
}
