package dispatch

import (
	"fmt"
	"strings"

	"alerts-backend/internal/models"
)

var severityColors = map[models.Severity]string{
	models.SeverityCritical: "#dc2626",
	models.SeverityHigh:     "#f97316",
	models.SeverityMedium:   "#eab308",
	models.SeverityLow:      "#3b82f6",
}

var severityEmoji = map[models.Severity]string{
	models.SeverityCritical: "🔴",
	models.SeverityHigh:     "🟠",
	models.SeverityMedium:   "🟡",
	models.SeverityLow:      "🔵",
}

// EmailSubject builds the subject line for an alert email.
func EmailSubject(alert models.Alert) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(alert.Severity)), alert.Title)
}

// EmailBody renders the severity-colored HTML body. Pure function of the
// alert record.
func EmailBody(alert models.Alert, dashboardURL string) string {
	color, ok := severityColors[alert.Severity]
	if !ok {
		color = "#6b7280"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"></head><body>")
	b.WriteString(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:'Segoe UI',Tahoma,sans-serif;">`)
	fmt.Fprintf(&b, `<div style="background:%s;color:white;padding:30px;border-radius:8px 8px 0 0;">`, color)
	b.WriteString("<h1 style=\"margin:0 0 10px 0;\">🚨 New Alert</h1>")
	fmt.Fprintf(&b, `<span style="padding:5px 15px;background:rgba(255,255,255,0.2);border-radius:20px;font-size:12px;font-weight:bold;">%s</span>`,
		strings.ToUpper(string(alert.Severity)))
	b.WriteString("</div>")
	b.WriteString(`<div style="background:#f9fafb;padding:30px;border-radius:0 0 8px 8px;border:1px solid #e5e7eb;">`)
	b.WriteString(`<div style="background:white;padding:20px;border-radius:8px;">`)
	writeField(&b, "Client", alert.ClientName)
	writeField(&b, "Alert Type", TitleizeType(alert.AlertType))
	writeField(&b, "Title", "<strong>"+alert.Title+"</strong>")
	writeField(&b, "Description", alert.Description)
	b.WriteString("</div>")
	fmt.Fprintf(&b, `<a href="%s" style="display:inline-block;padding:12px 24px;background:%s;color:white;text-decoration:none;border-radius:6px;font-weight:600;margin-top:20px;">View on Dashboard →</a>`,
		dashboardURL, color)
	b.WriteString("</div>")
	b.WriteString(`<div style="text-align:center;color:#6b7280;font-size:12px;margin-top:30px;">`)
	b.WriteString("<p>This is an automatic alert from the monitoring system</p>")
	b.WriteString("</div></div></body></html>")
	return b.String()
}

// ChatMessage renders the plain-text message used by chat channels
// (WhatsApp, Telegram). Pure function of the alert record.
func ChatMessage(alert models.Alert) string {
	emoji, ok := severityEmoji[alert.Severity]
	if !ok {
		emoji = "⚠️"
	}

	return strings.TrimSpace(fmt.Sprintf(`%s *SYSTEM ALERT*

*Client:* %s
*Type:* %s
*Severity:* %s

*%s*

%s

_See the dashboard for details_`,
		emoji,
		alert.ClientName,
		TitleizeType(alert.AlertType),
		strings.ToUpper(string(alert.Severity)),
		alert.Title,
		alert.Description,
	))
}

// TitleizeType turns "stock_zero" into "Stock Zero" for human-facing text.
func TitleizeType(alertType string) string {
	words := strings.Split(alertType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div style="color:#6b7280;font-size:12px;text-transform:uppercase;font-weight:600;margin-bottom:5px;">%s</div>`, label)
	fmt.Fprintf(b, `<div style="color:#111827;font-size:16px;margin-bottom:15px;">%s</div>`, value)
}
