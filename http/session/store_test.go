package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/session"
)

const (
	testAuthKey    = "c6b1d5b2a9f04a3e8f1e6d7c3b2a190f"
	testEncryptKey = "0bc7730e33bb9ef91197239cb3a44fb4"
)

func TestNewStoreServiceInvalid(t *testing.T) {
	notHex := "😅"
	for _, tc := range []struct {
		name string
		cfg  session.Config
	}{
		{"bad-env", session.Config{Env: "LOCAL", SessionName: "s", AuthKey: testAuthKey, EncryptKey: testEncryptKey}},
		{"no-name", session.Config{Env: cryptodash.Testing, AuthKey: testAuthKey, EncryptKey: testEncryptKey}},
		{"auth-not-hex", session.Config{Env: cryptodash.Testing, SessionName: "s", AuthKey: notHex, EncryptKey: testEncryptKey}},
		{"encrypt-not-hex", session.Config{Env: cryptodash.Testing, SessionName: "s", AuthKey: testAuthKey, EncryptKey: notHex}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := session.NewStoreService(tc.cfg)
			require.ErrorIs(t, err, cryptodash.ErrBadConfig)
			require.Zero(t, svc)
		})
	}
}

func TestLastPathRoundTrip(t *testing.T) {
	// Arrange
	svc, err := session.NewStoreService(session.Config{
		Env:         cryptodash.Testing,
		SessionName: "cryptodash-test",
		AuthKey:     testAuthKey,
		EncryptKey:  testEncryptKey,
	})
	require.Nil(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/coin/42", nil)
	s, err := svc.GetSession(r)
	require.Nil(t, err)
	require.Empty(t, s.LastPath())

	// Act
	require.Nil(t, s.SetLastPath(w, r, "/coin/42"))

	// Assert
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "https://example.com/admin", nil)
	next.AddCookie(cookies[0])
	s, err = svc.GetSession(next)
	require.Nil(t, err)
	require.Equal(t, "/coin/42", s.LastPath())
}

func TestStub(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	s, err := session.NewStub("/admin").GetSession(r)
	require.Nil(t, err)
	require.Equal(t, "/admin", s.LastPath())

	s, err = session.NewStub("").GetSession(r)
	require.Nil(t, err)
	require.Empty(t, s.LastPath())
}
