package service

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=service

// Broadcaster is the realtime fan-out boundary.  ToAuction reaches every
// viewer of an auction; ToUser reaches a single user's private channel.
// Payloads are the event structs in the model package.
type Broadcaster interface {
	ToAuction(ctx context.Context, auctionID uint64, event string, payload any) error
	ToUser(ctx context.Context, userID uint64, event string, payload any) error
}

// Mailer is the outbound mail boundary.  Delivery is fire-and-forget;
// errors are logged by the caller and never affect engine state.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}
