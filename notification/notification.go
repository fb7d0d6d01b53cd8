package notification

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type Notification struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"bookingId"`
	Channel   string `json:"channel"` // email, sms
	Message   string `json:"message"`
	Status    string `json:"status"` // pending, sent, failed
}
