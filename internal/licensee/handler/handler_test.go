package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"licensing/internal/licensee/handler/mocks"
	"licensing/internal/licensee/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

const wallet = "0x52908400098527886e0f7030069857d2e4169ee7"

// newRouter mounts the handler; requests carrying X-Test-Wallet are treated as authenticated.
func newRouter(t *testing.T) (*mocks.MockService, chi.Router) {
	t.Helper()
	svc := mocks.NewMockService(gomock.NewController(t))
	h := New(svc, zap.NewNop())

	r := chi.NewRouter()
	h.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if hdr := req.Header.Get("X-Test-Wallet"); hdr != "" {
					req = req.WithContext(requestcontext.WithWallet(req.Context(), id.Wallet(hdr)))
				}
				next.ServeHTTP(w, req)
			})
		})
		h.RegisterAuthenticated(r)
	})
	return svc, r
}

func serve(t *testing.T, r http.Handler, method, path, body, caller string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Test-Wallet", caller)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

const registerBody = `{
	"wallet_address": "0x52908400098527886E0F7030069857D2E4169EE7",
	"name": "Jane Doe",
	"dob": "1990-05-17T00:00:00Z",
	"address": "1 Harbour Road",
	"email_address": "jane@example.com",
	"phone_number": "+65 5550 1234",
	"nationality": "Singaporean",
	"country_of_application": "Singapore"
}`

func TestHandleRegister(t *testing.T) {
	t.Run("200 - encoded payload for own wallet", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().RegisterParams(gomock.Any()).DoAndReturn(func(p models.RegistrationParams) (*models.Raw, error) {
			assert.Equal(t, wallet, p.WalletAddress)
			assert.Nil(t, p.Company)
			return &models.Raw{Data: "0x3078", Usable: false}, nil
		})

		code, resp := serve(t, r, http.MethodPost, "/licensee/register", registerBody, wallet)

		assert.Equal(t, http.StatusOK, code)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "0x3078", data["data"])
		assert.Equal(t, false, data["usable"])
	})

	t.Run("200 - wallet without 0x prefix matches the session wallet", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().RegisterParams(gomock.Any()).DoAndReturn(func(p models.RegistrationParams) (*models.Raw, error) {
			assert.Equal(t, wallet, p.WalletAddress)
			return &models.Raw{Data: "0x3078"}, nil
		})
		body := strings.Replace(registerBody, `"0x52908400098527886E0F7030069857D2E4169EE7"`, `"52908400098527886E0F7030069857D2E4169EE7"`, 1)

		code, _ := serve(t, r, http.MethodPost, "/licensee/register", body, wallet)

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("403 - another wallet", func(t *testing.T) {
		_, r := newRouter(t)

		code, resp := serve(t, r, http.MethodPost, "/licensee/register", registerBody,
			"0x0000000000000000000000000000000000000001")

		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "forbidden", resp["error"])
	})

	t.Run("400 - delimiter in a field", func(t *testing.T) {
		_, r := newRouter(t)
		body := strings.Replace(registerBody, "Jane Doe", "Jane|Doe", 1)

		code, resp := serve(t, r, http.MethodPost, "/licensee/register", body, wallet)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "name must not contain '|'", resp["message"])
	})

	t.Run("400 - date of birth not RFC3339", func(t *testing.T) {
		_, r := newRouter(t)
		body := strings.Replace(registerBody, "1990-05-17T00:00:00Z", "1990-05-17", 1)

		code, resp := serve(t, r, http.MethodPost, "/licensee/register", body, wallet)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "date_of_birth must be an RFC3339 timestamp", resp["message"])
	})

	t.Run("500 - no session wallet in context", func(t *testing.T) {
		_, r := newRouter(t)

		code, _ := serve(t, r, http.MethodPost, "/licensee/register", registerBody, "")

		assert.Equal(t, http.StatusInternalServerError, code)
	})
}

func TestHandleGet(t *testing.T) {
	t.Run("200 - registered", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().GetAccount(gomock.Any(), wallet).
			Return(&models.Licensee{WalletAddress: wallet, Name: "Jane Doe", Usable: true}, nil)

		code, resp := serve(t, r, http.MethodGet, "/licensee/"+wallet, "", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Licensee found", resp["message"])
		assert.Equal(t, "Jane Doe", resp["data"].(map[string]any)["name"])
	})

	t.Run("200 - absent account", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().GetAccount(gomock.Any(), wallet).Return(models.Absent(), nil)

		code, resp := serve(t, r, http.MethodGet, "/licensee/"+wallet, "", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Licensee account not registered", resp["message"])
	})

	t.Run("400 - invalid wallet", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().GetAccount(gomock.Any(), "nope").
			Return(nil, dErrors.New(dErrors.CodeValidation, "invalid wallet address format"))

		code, _ := serve(t, r, http.MethodGet, "/licensee/nope", "", "")

		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("502 - ledger unavailable", func(t *testing.T) {
		svc, r := newRouter(t)
		svc.EXPECT().GetAccount(gomock.Any(), wallet).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "failed to read licensee account"))

		code, resp := serve(t, r, http.MethodGet, "/licensee/"+wallet, "", "")

		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, "ledger_unavailable", resp["error"])
	})
}
