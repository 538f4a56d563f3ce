package usecase

import (
	"context"

	"campusnav/internal/domain/entity"
)

// AssistantIntent classifies an assistant reply
type AssistantIntent string

const (
	IntentGreeting     AssistantIntent = "greeting"
	IntentHelp         AssistantIntent = "help"
	IntentNavigating   AssistantIntent = "navigating"
	IntentConfirm      AssistantIntent = "confirm"
	IntentDeclined     AssistantIntent = "declined"
	IntentNotFound     AssistantIntent = "not_found"
	IntentCancelled    AssistantIntent = "cancelled"
	IntentNothingToEnd AssistantIntent = "nothing_to_cancel"
)

// QuickOption is a one-tap follow-up offered with a reply
type QuickOption struct {
	Label string `json:"label"`
	// Text is sent back verbatim as the next message when the option is chosen
	Text string `json:"text"`
}

// AssistantReply is the assistant's answer to one message
type AssistantReply struct {
	Intent   AssistantIntent `json:"intent"`
	Language string          `json:"language"`
	Text     string          `json:"text"`

	Resolution *entity.Resolution `json:"resolution,omitempty"`

	// Navigation is set when the message started or ended a session
	Navigation *NavigationState `json:"navigation,omitempty"`

	// AwaitingConfirmation is set while a "Did you mean" question is open
	AwaitingConfirmation bool          `json:"awaiting_confirmation"`
	Options              []QuickOption `json:"options,omitempty"`
}

// AssistantUsecase defines the interface for the conversational destination picker
type AssistantUsecase interface {
	// Greet returns the opening message for language
	Greet(ctx context.Context, language string) (*AssistantReply, error)

	// Respond handles one user message in language ("en" or "ta")
	Respond(ctx context.Context, text, language string) (*AssistantReply, error)
}
