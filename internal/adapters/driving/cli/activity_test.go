package cli

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/backend/httpapi"
)

const activityPayload = `{
	"store_order_dates": [
		{
			"store_name": "rdx-sports-store",
			"created_at_min_shopify": "2025-01-01T00:00:00Z",
			"created_at_max_shopify": "2025-01-31"
		},
		{
			"store_name": "empty-store",
			"created_at_min_shopify": null,
			"created_at_max_shopify": null
		}
	],
	"last_sync_min": "2025-02-01",
	"last_sync_max": "2025-02-03"
}`

func TestActivityCmd_Use(t *testing.T) {
	assert.Equal(t, "activity", activityCmd.Use)
	assert.NotNil(t, activityCmd.Flags().Lookup("json"))
}

func TestActivityCmd_PrintsTable(t *testing.T) {
	env := setupCLITest(t)
	env.backend.activity = activityPayload

	stdout, _, err := executeCommand(t, "", "activity")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "STORE")
	assert.Contains(t, lines[0], "FETCHED RANGE")
	assert.Contains(t, lines[1], "rdx-sports-store")
	assert.Contains(t, lines[1], "Jan 1, 2025 to Jan 31, 2025")
	assert.Contains(t, lines[1], "Feb 1, 2025 to Feb 3, 2025")
	assert.True(t, strings.HasPrefix(lines[2], "2"))
	assert.Contains(t, lines[2], "Not fetched")
}

func TestActivityCmd_JSON(t *testing.T) {
	env := setupCLITest(t)
	env.backend.activity = activityPayload

	stdout, _, err := executeCommand(t, "", "activity", "--json")

	require.NoError(t, err)
	assert.Contains(t, stdout, `"store_name": "rdx-sports-store"`)
	assert.Contains(t, stdout, `"id": 2`)
	assert.Contains(t, stdout, `"fetched_range": "Not fetched"`)
}

func TestActivityCmd_Empty(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := executeCommand(t, "", "activity")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No activity yet.")
}

func TestActivityCmd_BackendFailure(t *testing.T) {
	env := setupCLITest(t)
	env.backend.server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _, err := executeCommand(t, "", "activity")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading activity")
}

func TestActivityCmd_RequestPath(t *testing.T) {
	var gotPath string
	env := setupCLITest(t)
	env.backend.server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"store_order_dates": []}`))
	})

	_, _, err := executeCommand(t, "", "activity")

	require.NoError(t, err)
	assert.Equal(t, httpapi.PathActivity, gotPath)
}
