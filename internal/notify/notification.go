// Package notify delivers customer and owner notifications. Delivery is
// simulated: messages are validated, delayed and logged.
package notify

import (
	"errors"
	"strings"
	"unicode"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

type Notification struct {
	Channel Channel `json:"channel"`
	To      string  `json:"to"`
	Subject string  `json:"subject,omitempty"`
	Body    string  `json:"body"`
}

// Validate checks the recipient matches the channel.
func (n Notification) Validate() error {
	to := strings.TrimSpace(n.To)
	if to == "" {
		return errors.New("recipient is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return errors.New("body is required")
	}

	switch n.Channel {
	case ChannelEmail:
		if !strings.Contains(to, "@") {
			return errors.New("email recipient must be an address")
		}
	case ChannelSMS:
		digits := strings.TrimPrefix(strings.ReplaceAll(to, " ", ""), "+")
		if len(digits) < 6 || strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			return errors.New("sms recipient must be a phone number")
		}
	default:
		return errors.New("channel must be email or sms")
	}
	return nil
}
