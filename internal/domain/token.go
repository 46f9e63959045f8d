package domain

import "time"

// DeviceToken is one push-notification target registered by the mobile
// app. The token string is an opaque FCM registration id and doubles as
// the key, so re-registering replaces the previous record.
type DeviceToken struct {
	Token        string    `json:"token"`
	Platform     string    `json:"platform"` // "android" or "ios"
	RegisteredAt time.Time `json:"registeredAt"`
}

// DeviceTokenRepository stores the push targets BUY alerts fan out to.
type DeviceTokenRepository interface {
	Register(token DeviceToken)
	Unregister(token string)
	ActiveTokens() []string
	Count() int
}
