package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageAppendsFormattedLine(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := EntryRecordedEvent{
		EntryType:     "income",
		EntryID:       5,
		ApartmentID:   2,
		ApartmentName: "Seaside",
		UserID:        7,
		AmountCents:   12050,
		Date:          "2024-03-01",
		RecordedAt:    "2024-03-01T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "finance.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "income recorded")
	assert.Contains(t, line, `apartment="Seaside"`)
	assert.Contains(t, line, "amount=120.50")
	assert.Contains(t, line, "date=2024-03-01")
	assert.Contains(t, line, "category=-") // incomes carry no category

	// A second event appends rather than truncates.
	ev.EntryType = "expense"
	ev.Category = "Repairs"
	body, err = json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, handleMessage(body))

	data, err = os.ReadFile(filepath.Join("logs", "finance.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "expense recorded")
	assert.Contains(t, lines[1], "category=Repairs")
}

func TestHandleMessageRejectsMalformedBody(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, handleMessage([]byte("{not json")))
}
