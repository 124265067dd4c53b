package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	JSON(rec, http.StatusOK, []int{})
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	Text(rec, http.StatusOK, "plain")
	assert.Equal(t, "plain", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestBuildPasswordResetHTML(t *testing.T) {
	html := BuildPasswordResetHTML("http://app.test/reset-password?token=abc&x=<y>", time.Hour)

	assert.Contains(t, html, `href="http://app.test/reset-password?token=abc&amp;x=&lt;y&gt;"`)
	assert.Contains(t, html, "1 hour")
	assert.NotContains(t, html, "<y>")
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 hours", humanDuration(2*time.Hour))
	assert.Equal(t, "30 minutes", humanDuration(30*time.Minute))
	assert.Equal(t, "1.5s", humanDuration(1500*time.Millisecond))
}
