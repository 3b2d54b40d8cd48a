package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordRegistration()
	c.RecordLogin()
	c.RecordChatMessage()
	c.RecordHistoryReplayed(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.chatMessages))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.historyReplayed))
}

func TestConnectionGauge(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ConnectionOpened()
	c.ConnectionOpened()
	c.ConnectionClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.wsConnections))
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordChatMessage()

	res := httptest.NewRecorder()
	Handler(reg).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "jugclassic_chat_messages_total 1")
}
