package i18n

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := InitTranslator(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestKindCodes(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated:  http.StatusUnauthorized,
		KindInactiveAccount:  http.StatusBadRequest,
		KindPermissionDenied: http.StatusForbidden,
		KindProfileMissing:   http.StatusNotFound,
		KindNotFound:         http.StatusNotFound,
		KindInvalidState:     http.StatusConflict,
		KindInvalidArgument:  http.StatusBadRequest,
		KindConflict:         http.StatusConflict,
		KindInternal:         http.StatusInternalServerError,
		Kind("bogus"):        http.StatusInternalServerError,
	}
	for k, code := range cases {
		assert.Equal(t, code, int(k.Code()), k)
	}
}

func TestWithParamDoesNotMutateShared(t *testing.T) {
	e1 := ErrOrderClosed.WithParam("Status", "delivered")
	e2 := ErrOrderClosed.WithParam("Status", "cancelled")

	assert.Empty(t, ErrOrderClosed.Data)
	assert.Equal(t, "Order is already delivered", e1.Error())
	assert.Equal(t, "Order is already cancelled", e2.Error())
	assert.Equal(t, KindInvalidState, e1.Kind)
}

func TestErrorsIsMatchesMessageID(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrReportLocked.WithParam("ID", 3))
	assert.True(t, errors.Is(err, ErrReportLocked))
	assert.False(t, errors.Is(err, ErrReportAlreadyApproved))
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestTranslateHindi(t *testing.T) {
	tr := GetTranslator()
	require.NotNil(t, tr)
	assert.Equal(t, "Farmer not found", tr.Translate("ErrorFarmerNotFound", "en", nil))
	assert.Equal(t, "किसान नहीं मिला", tr.Translate("ErrorFarmerNotFound", "hi", nil))
	// unsupported language falls back to English
	assert.Equal(t, "Farmer not found", tr.Translate("ErrorFarmerNotFound", "fr", nil))
	// unknown ids come back unchanged
	assert.Equal(t, "NoSuchMessage", tr.Translate("NoSuchMessage", "en", nil))
	assert.Equal(t, "Successfully verified 2 farmers",
		tr.Translate(SuccessBulkVerified, "en", map[string]any{"Count": 2}))
}

func TestLanguageFromRequest(t *testing.T) {
	cases := []struct {
		xlang, accept, want string
	}{
		{"hi", "", "hi"},
		{"HI-in", "", "hi"},
		{"", "hi-IN,en;q=0.8", "hi"},
		{"", "fr-FR, hi;q=0.5", "hi"},
		{"", "fr", "en"},
		{"de", "hi", "en"},
		{"", "", "en"},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.xlang != "" {
			r.Header.Set(cnst.XLang, tc.xlang)
		}
		if tc.accept != "" {
			r.Header.Set("Accept-Language", tc.accept)
		}
		assert.Equal(t, tc.want, LanguageFromRequest(r), "%+v", tc)
	}
}

func newRouter(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", h)
	return r
}

func TestRespondWithError(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		RespondWithError(c, ErrReportAlreadyApproved)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "InvalidState", gjson.Get(w.Body.String(), "kind").String())
	assert.Equal(t, "Report is already approved", gjson.Get(w.Body.String(), "error").String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(cnst.XLang, "hi")
	r.ServeHTTP(w, req)
	assert.Equal(t, "रिपोर्ट पहले से स्वीकृत है", gjson.Get(w.Body.String(), "error").String())
}

func TestRespondWithErrorPlainErrorIsInternal(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		RespondWithError(c, errors.New("db exploded"))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal", gjson.Get(w.Body.String(), "kind").String())
	assert.NotContains(t, w.Body.String(), "db exploded")
}

func TestRespondWithSuccess(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		RespondOK(c, SuccessBulkVerified, map[string]any{"Count": 2}, gin.H{"updated_count": 2})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully verified 2 farmers", gjson.Get(w.Body.String(), "message").String())
	assert.Equal(t, int64(2), gjson.Get(w.Body.String(), "updated_count").Int())

	r = newRouter(func(c *gin.Context) {
		RespondWithSuccess(c, http.StatusCreated, SuccessPhotoUploaded, nil, []int{1})
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "[1]", gjson.Get(w.Body.String(), "data").Raw)
}
