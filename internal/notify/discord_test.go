package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(failures int) RefreshReport {
	results := []CityResult{
		{City: "Dubai", Points: 3, Duration: 4 * time.Second},
		{City: "Abu Dhabi", Points: 2, Duration: 3 * time.Second},
		{City: "Sharjah", Cached: true},
	}
	for i := 0; i < failures && i < len(results); i++ {
		results[i].Err = "completion provider unavailable"
		results[i].Points = 0
	}
	return RefreshReport{
		StartedAt: time.Now(),
		Duration:  10 * time.Second,
		Results:   results,
	}
}

func TestDiscordNotifier_SendRefreshReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		report     RefreshReport
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "clean cycle uses green color",
			report:     testReport(0),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "partial failure uses yellow color",
			report:     testReport(1),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
		},
		{
			name:       "full failure uses red color",
			report:     testReport(3),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
		},
		{
			name:       "discord returns 429 rate limited",
			report:     testReport(0),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			report:     testReport(0),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendRefreshReport(context.Background(), tt.report)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, "Trend refresh")
			assert.Len(t, embed.Fields, len(tt.report.Results))

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Contains(t, fieldMap, "Dubai")
			if tt.wantColor == colorGreen {
				assert.Equal(t, "cache still fresh", fieldMap["Sharjah"])
			}
		})
	}
}

func TestDiscordNotifier_SendRefreshReport_CapsFields(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	report := RefreshReport{Duration: time.Minute}
	for i := 0; i < 30; i++ {
		report.Results = append(report.Results, CityResult{City: "City", Points: 1})
	}

	d := NewDiscordNotifier(srv.URL)
	err := d.SendRefreshReport(context.Background(), report)
	require.NoError(t, err)

	require.Len(t, received.Embeds, 1)
	assert.Len(t, received.Embeds[0].Fields, 25)
	assert.Contains(t, received.Embeds[0].Description, "5 more cities omitted")
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendRefreshReport(context.Background(), testReport(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendRefreshReport(context.Background(), testReport(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}
