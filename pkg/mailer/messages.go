package mailer

import (
	"fmt"
	"time"
)

// Plain-text bodies for the two ticketed flows. The raw ticket value is
// embedded in the link and appears nowhere else.

func VerifyEmailJob(to, name, link string, ttl time.Duration) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Verify your email address",
		Text: fmt.Sprintf(
			"Hi %s,\n\nPlease verify your email address by opening the link below:\n\n%s\n\nThe link expires in %s. If you did not create this account, ignore this message.\n",
			name, link, formatTTL(ttl)),
	}
}

func ResetPasswordJob(to, name, link string, ttl time.Duration) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Reset your password",
		Text: fmt.Sprintf(
			"Hi %s,\n\nA password reset was requested for your account. Open the link below to choose a new password:\n\n%s\n\nThe link expires in %s. If you did not request this, ignore this message.\n",
			name, link, formatTTL(ttl)),
	}
}

func formatTTL(ttl time.Duration) string {
	if ttl >= time.Hour && ttl%time.Hour == 0 {
		h := int(ttl / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(ttl / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
