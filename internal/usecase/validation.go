package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

const maxMessageLength = 4096

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateInboundEvent checks a parsed channel event. An event with an empty
// message is valid; the engine answers it with the fallback.
func ValidateInboundEvent(ev InboundEvent) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(ev.Sender) == "" {
		errs = append(errs, ValidationError{"sender", "is required"})
	} else if entity.NormalizePhone(ev.Sender) == "" {
		errs = append(errs, ValidationError{"sender", "must contain digits"})
	}

	if utf8.RuneCountInString(ev.Message) > maxMessageLength {
		errs = append(errs, ValidationError{"message", fmt.Sprintf("must not exceed %d characters", maxMessageLength)})
	}
	if len(ev.ButtonID) > 256 {
		errs = append(errs, ValidationError{"button_id", "must not exceed 256 characters"})
	}

	return errs
}

// ValidateChatInput checks a website chat request.
func ValidateChatInput(phone, message string) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(message) == "" {
		errs = append(errs, ValidationError{"message", "is required"})
	} else if utf8.RuneCountInString(message) > maxMessageLength {
		errs = append(errs, ValidationError{"message", fmt.Sprintf("must not exceed %d characters", maxMessageLength)})
	}

	digits := entity.NormalizePhone(phone)
	if digits == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	} else if len(digits) < 10 || len(digits) > 15 {
		errs = append(errs, ValidationError{"phone", "must be a valid phone number"})
	}

	return errs
}

func JoinValidation(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
