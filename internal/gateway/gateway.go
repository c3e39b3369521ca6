package gateway

import "context"

// Messenger defines the interface for communication gateways (console, Telegram, Discord)
type Messenger interface {
	// Start begins the message listening loop
	Start(ctx context.Context) error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}

// Advisor turns a city name into the reply text. It never fails; problems
// are rendered into the text itself.
type Advisor interface {
	Advise(ctx context.Context, city string) string
}
