package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"
)

// NotifyService sends the post-report summary email. It is strictly best
// effort: callers log failures and move on. In development it logs instead
// of sending, matching the rest of the app's dev fallbacks.
type NotifyService struct {
	client    *resend.Client
	fromEmail string
	appName   string
	isDev     bool
}

func NewNotifyService(apiKey, fromEmail, appName string, isDev bool) *NotifyService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &NotifyService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

func (s *NotifyService) SendWeeklySummary(ctx context.Context, email string, result *ReportResult) error {
	subject := fmt.Sprintf("%s: your week %s in review", s.appName, result.WeekKey)
	body := weeklySummaryBody(result)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "weekly_summary", "to", email, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("notify service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "weekly_summary", "to", email)
	}
	return err
}

func weeklySummaryBody(result *ReportResult) string {
	var b strings.Builder

	met := 0
	for _, g := range result.GoalSummaries {
		if g.Met {
			met++
		}
	}

	fmt.Fprintf(&b, "Week %s: %d of %d goals met.\n\n", result.WeekKey, met, len(result.GoalSummaries))
	for _, g := range result.GoalSummaries {
		status := "missed"
		if g.Met {
			status = "met"
		}
		fmt.Fprintf(&b, "- %s: %s (%.1f%%, streak %d)\n", g.Title, status, g.ProgressPercent, g.StreakAfterWeek)
	}

	if result.MoodOverview.Count > 0 {
		fmt.Fprintf(&b, "\nMood: %d entries, average valence %.2f.\n", result.MoodOverview.Count, result.MoodOverview.AvgValence)
	}
	if result.HabitOverview.Count > 0 {
		fmt.Fprintf(&b, "Habits: %d entries logged.\n", result.HabitOverview.Count)
	}

	return b.String()
}
