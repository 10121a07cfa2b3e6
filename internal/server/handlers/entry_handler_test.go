package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/service/ingestion"
	"github.com/mamadbah2/prodtracker/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type published struct {
	event string
	data  string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []published
}

func (b *recordingBroadcaster) Publish(event string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, published{event: event, data: string(data)})
}

func newEntryEngine(t *testing.T) (*gin.Engine, *gorm.DB, *recordingBroadcaster) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	broadcaster := &recordingBroadcaster{}
	svc := ingestion.NewService(sqlite.NewEntryRepository(db), broadcaster, nil, nil)

	r := gin.New()
	r.POST("/api/entry", NewEntryHandler(svc, nil).Submit)
	return r, db, broadcaster
}

func postEntry(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/entry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countEntries(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Entry{}).Count(&n).Error)
	return n
}

func TestSubmitValidEntryBroadcastsOnce(t *testing.T) {
	r, db, broadcaster := newEntryEngine(t)
	body := `{"orderNo":"ORD-1","itemName":"Bolt","operatorId":"op1","machineId":"m1","materialPicked":10,"producedQty":9,"wastedQty":1,"enteredBy":"op1"}`

	w := postEntry(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var ack models.EntryAck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
	assert.Equal(t, "Entry saved successfully", ack.Message)
	assert.NotZero(t, ack.ID)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, ingestion.EventNewEntry, broadcaster.events[0].event)
	assert.Equal(t, body, broadcaster.events[0].data)
	assert.EqualValues(t, 1, countEntries(t, db))
}

func TestSubmitMissingOrderNoIsRejected(t *testing.T) {
	r, db, broadcaster := newEntryEngine(t)

	w := postEntry(r, `{"operatorId":"op1","machineId":"m1","producedQty":5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var ack models.EntryAck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.False(t, ack.Success)
	assert.Equal(t, []string{"orderNo"}, ack.Fields)

	assert.Empty(t, broadcaster.events)
	assert.Zero(t, countEntries(t, db))
}

func TestSubmitMalformedJSON(t *testing.T) {
	r, db, broadcaster := newEntryEngine(t)

	w := postEntry(r, `{"orderNo":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, broadcaster.events)
	assert.Zero(t, countEntries(t, db))
}

func TestSubmitStorageFailure(t *testing.T) {
	r, db, broadcaster := newEntryEngine(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := postEntry(r, `{"orderNo":"ORD-1","operatorId":"op1","machineId":"m1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to save entry"}`, w.Body.String())
	assert.Empty(t, broadcaster.events)
}
