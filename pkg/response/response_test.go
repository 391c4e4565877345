package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kinemathika-api/internal/models"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestJSONEnvelope(t *testing.T) {
	c, w := newContext()
	JSON(c, http.StatusOK, []int{1, 2}, &models.Pagination{Page: 1, PageSize: 2, TotalCount: 5}, map[string]interface{}{"cache_hit": true})

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []interface{}{1.0, 2.0}, envelope["data"])
	assert.Equal(t, 5.0, envelope["pagination"].(map[string]interface{})["total_count"])
	assert.Equal(t, true, envelope["meta"].(map[string]interface{})["cache_hit"])
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.Clone(appErrors.ErrUnknownScope, "class \"999\" not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var envelope Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "UNKNOWN_SCOPE", envelope.Error.Code)
}

func TestAttachment(t *testing.T) {
	c, w := newContext()
	Attachment(c, "class_report_c1_20250915.csv", "text/csv; charset=utf-8", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="class_report_c1_20250915.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
