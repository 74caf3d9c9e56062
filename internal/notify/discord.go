package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	colorGreen  = 0x2ECC71 // all cities refreshed
	colorYellow = 0xF1C40F // partial failures
	colorRed    = 0xE74C3C // every city failed
)

const reportDurationPrecision = 100 * time.Millisecond

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendRefreshReport sends a refresh cycle summary as a Discord embed.
func (d *DiscordNotifier) SendRefreshReport(ctx context.Context, report RefreshReport) error {
	failures := report.Failures()

	embed := discordEmbed{
		Title: fmt.Sprintf("Trend refresh: %d/%d cities updated",
			len(report.Results)-failures, len(report.Results)),
		Color: reportColor(len(report.Results), failures),
		Description: fmt.Sprintf("Cycle finished in %s.",
			report.Duration.Round(reportDurationPrecision)),
	}

	// Discord allows max 25 fields per embed.
	limit := min(len(report.Results), 25)

	for i := range limit {
		res := report.Results[i]
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   res.City,
			Value:  cityResultValue(res),
			Inline: true,
		})
	}

	if len(report.Results) > 25 {
		embed.Description += fmt.Sprintf(" %d more cities omitted.", len(report.Results)-25)
	}

	payload := discordWebhookPayload{
		Embeds: []discordEmbed{embed},
	}
	return d.post(ctx, payload)
}

func cityResultValue(res CityResult) string {
	if res.Err != "" {
		return fmt.Sprintf("failed: %s", res.Err)
	}
	if res.Cached {
		return "cache still fresh"
	}
	return fmt.Sprintf("%d data points, %s", res.Points, res.Duration.Round(reportDurationPrecision))
}

func reportColor(total, failures int) int {
	switch {
	case failures == 0:
		return colorGreen
	case failures < total:
		return colorYellow
	default:
		return colorRed
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
