package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"campusnav/internal/domain/constants"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/matcher"
	"campusnav/internal/usecase"
)

type assistantMessages struct {
	greeting         string
	navigating       string
	didYouMean       string
	confirmHint      string
	locationNotFound string
	help             string
	declined         string
	cancelled        string
	nothingToCancel  string

	yes    []string
	no     []string
	hello  []string
	cancel []string
}

var assistantTables = map[string]assistantMessages{
	constants.LanguageEnglish: {
		greeting:         "Hello! I'm your navigation assistant. Where would you like to go?",
		navigating:       "Navigating to",
		didYouMean:       "Did you mean",
		confirmHint:      `Say "yes" to confirm.`,
		locationNotFound: "Sorry, I could not find that location. Please try again.",
		help:             "Please say where you want to go, for example: Navigate to CSE Block",
		declined:         "Okay, tell me where you want to go.",
		cancelled:        "Navigation cancelled.",
		nothingToCancel:  "There is no navigation to cancel.",
		yes:              []string{"yes", "yeah", "yep", "ok", "okay", "confirm", "yes, confirm"},
		no:               []string{"no", "nope", "no, try again"},
		hello:            []string{"hi", "hello", "hey", "hi there"},
	},
	constants.LanguageTamil: {
		greeting:         "வணக்கம்! நான் உங்கள் வழிகாட்டி. எங்கு செல்ல வேண்டும்?",
		navigating:       "செல்கிறோம்",
		didYouMean:       "நீங்கள் சொன்னது",
		confirmHint:      `உறுதிப்படுத்த "ஆம்" என்று சொல்லுங்கள்.`,
		locationNotFound: "மன்னிக்கவும், அந்த இடத்தை கண்டுபிடிக்க முடியவில்லை. மீண்டும் முயற்சிக்கவும்.",
		help:             "எங்கு செல்ல வேண்டும் என்று சொல்லுங்கள், உதாரணம்: சிஎஸ்இ பிளாக்கிற்கு செல்லுங்கள்",
		declined:         "சரி, எங்கு செல்ல வேண்டும் என்று சொல்லுங்கள்.",
		cancelled:        "வழிசெலுத்தல் ரத்து செய்யப்பட்டது.",
		nothingToCancel:  "ரத்து செய்ய எந்த வழிசெலுத்தலும் இல்லை.",
		yes:              []string{"ஆம்", "சரி", "yes", "ok"},
		no:               []string{"இல்லை", "no"},
		hello:            []string{"வணக்கம்", "hi", "hello"},
		cancel:           []string{"ரத்து"},
	},
}

// helpWords trigger the help reply in any language.
var helpWords = []string{"help", "other options", "உதவி"}

type assistantService struct {
	destinations usecase.DestinationUsecase
	navigation   usecase.NavigationUsecase
	logger       *slog.Logger

	mu sync.Mutex
	// pending is the destination awaiting a yes or no
	pending *entity.MatchResult
}

// NewAssistantService creates the conversational destination picker
func NewAssistantService(
	destinations usecase.DestinationUsecase,
	navigation usecase.NavigationUsecase,
	logger *slog.Logger,
) usecase.AssistantUsecase {
	return &assistantService{
		destinations: destinations,
		navigation:   navigation,
		logger:       logger.With(slog.String("component", "assistant")),
	}
}

func messagesFor(language string) (string, assistantMessages, error) {
	if language == "" {
		language = constants.LanguageEnglish
	}

	table, ok := assistantTables[language]
	if !ok {
		return "", assistantMessages{}, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unsupported language %q", language))
	}

	return language, table, nil
}

// Greet returns the opening message for language
func (s *assistantService) Greet(_ context.Context, language string) (*usecase.AssistantReply, error) {
	language, table, err := messagesFor(language)
	if err != nil {
		return nil, err
	}

	return s.reply(language, usecase.IntentGreeting, table.greeting), nil
}

// Respond handles one user message
func (s *assistantService) Respond(ctx context.Context, text, language string) (*usecase.AssistantReply, error) {
	language, table, err := messagesFor(language)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	lowered := strings.ToLower(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if isCancel(lowered, table) {
		s.pending = nil

		return s.cancel(ctx, language, table)
	}

	if pending := s.pending; pending != nil {
		s.pending = nil

		switch {
		case slices.Contains(table.yes, lowered):
			return s.navigate(ctx, language, table, pending)
		case slices.Contains(table.no, lowered):
			return s.reply(language, usecase.IntentDeclined, table.declined), nil
		}
	}

	if containsAny(lowered, helpWords) {
		return s.reply(language, usecase.IntentHelp, table.help), nil
	}
	if slices.Contains(table.hello, strings.Trim(lowered, "!.")) {
		return s.reply(language, usecase.IntentGreeting, table.greeting), nil
	}

	resolution := s.destinations.ResolveTranscript(ctx, text)

	var reply *usecase.AssistantReply
	switch resolution.Outcome {
	case entity.MatchConfident:
		reply, err = s.navigate(ctx, language, table, resolution.Result)
		if err != nil {
			return nil, err
		}
	case entity.MatchAmbiguous:
		s.pending = resolution.Result
		reply = s.reply(language, usecase.IntentConfirm,
			fmt.Sprintf("%s %s? %s", table.didYouMean, resolution.Result.Point.Name, table.confirmHint))
		reply.AwaitingConfirmation = true
	case entity.MatchNotFound:
		reply = s.reply(language, usecase.IntentNotFound, table.locationNotFound)
	default:
		reply = s.reply(language, usecase.IntentHelp, table.help)
	}
	reply.Resolution = &resolution

	return reply, nil
}

func (s *assistantService) navigate(ctx context.Context, language string, table assistantMessages, match *entity.MatchResult) (*usecase.AssistantReply, error) {
	state, err := s.navigation.SelectDestination(ctx, match.Key)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Assistant started navigation",
		slog.String("destination", match.Key),
		slog.Float64("confidence", match.Confidence),
		slog.String("language", language),
	)

	reply := s.reply(language, usecase.IntentNavigating, fmt.Sprintf("%s %s", table.navigating, match.Point.Name))
	reply.Navigation = state

	return reply, nil
}

func (s *assistantService) cancel(ctx context.Context, language string, table assistantMessages) (*usecase.AssistantReply, error) {
	before, err := s.navigation.State(ctx)
	if err != nil {
		return nil, err
	}
	if before.Session.Status == entity.SessionIdle {
		return s.reply(language, usecase.IntentNothingToEnd, table.nothingToCancel), nil
	}

	state, err := s.navigation.Cancel(ctx)
	if err != nil {
		return nil, err
	}

	reply := s.reply(language, usecase.IntentCancelled, table.cancelled)
	reply.Navigation = state

	return reply, nil
}

func (s *assistantService) reply(language string, intent usecase.AssistantIntent, text string) *usecase.AssistantReply {
	return &usecase.AssistantReply{
		Intent:   intent,
		Language: language,
		Text:     text,
		Options:  quickOptions(intent),
	}
}

func isCancel(lowered string, table assistantMessages) bool {
	return matcher.IsCancelRequest(lowered) || containsAny(lowered, table.cancel)
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}

	return false
}

// quickOptions offers follow-ups that fit the reply just given.
func quickOptions(intent usecase.AssistantIntent) []usecase.QuickOption {
	switch intent {
	case usecase.IntentConfirm:
		return []usecase.QuickOption{
			{Label: "Yes, confirm", Text: "yes"},
			{Label: "No, try again", Text: "no"},
			{Label: "Show other options", Text: "show other options"},
		}
	case usecase.IntentNotFound:
		return []usecase.QuickOption{
			{Label: "Try CSE Block", Text: "Navigate to CSE Block"},
			{Label: "Try Canteen", Text: "Take me to canteen"},
			{Label: "Help me", Text: "Help with navigation"},
		}
	case usecase.IntentNavigating:
		return []usecase.QuickOption{
			{Label: "Cancel navigation", Text: "Cancel navigation"},
			{Label: "Help", Text: "Help with navigation"},
		}
	default:
		suggestions := matcher.Suggestions()
		options := make([]usecase.QuickOption, 0, len(suggestions)+1)
		for _, suggestion := range suggestions {
			options = append(options, usecase.QuickOption{Label: suggestion, Text: suggestion})
		}

		return append(options, usecase.QuickOption{Label: "Help with navigation", Text: "Help with navigation"})
	}
}
