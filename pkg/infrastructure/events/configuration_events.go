package events

import (
	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

const (
	SessionStartedEvent   = "session.started"
	ModelSelectedEvent    = "model.selected"
	OptionSelectedEvent   = "option.selected"
	OptionClearedEvent    = "option.cleared"
	RangeCalibratedEvent  = "range.calibrated"
	CalibrationResetEvent = "range.reset"
	CodeDecodedEvent      = "code.decoded"
	SpecialRequestEvent   = "special_request.updated"
)

// ConfigurationEvents lists every event type a session publishes
var ConfigurationEvents = []string{
	SessionStartedEvent,
	ModelSelectedEvent,
	OptionSelectedEvent,
	OptionClearedEvent,
	RangeCalibratedEvent,
	CalibrationResetEvent,
	CodeDecodedEvent,
	SpecialRequestEvent,
}

type SessionStarted struct {
	SessionID string `json:"session_id"`
}

type ModelSelected struct {
	ModelID entities.ModelID `json:"model_id"`
}

type OptionSelected struct {
	Category entities.CategoryID `json:"category"`
	Code     entities.OptionCode `json:"code"`
	// Cascaded lists categories whose value changed as a consequence
	Cascaded []entities.CategoryID `json:"cascaded,omitempty"`
}

type OptionCleared struct {
	Category entities.CategoryID   `json:"category"`
	Cascaded []entities.CategoryID `json:"cascaded,omitempty"`
}

type RangeCalibrated struct {
	Range entities.CalibratedRange `json:"range"`
}

type CalibrationReset struct {
	Previous entities.CalibratedRange `json:"previous"`
}

type CodeDecoded struct {
	Input     string           `json:"input"`
	ModelID   entities.ModelID `json:"model_id"`
	Complete  bool             `json:"complete"`
	Remainder string           `json:"remainder,omitempty"`
}

type SpecialRequestUpdated struct {
	Text string `json:"text"`
}
