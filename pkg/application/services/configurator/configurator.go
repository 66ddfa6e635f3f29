// Package configurator keeps the state of one configuration session and
// routes every change through validation, selection cascades and the event
// log.
package configurator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/ptconfig/pkg/application/dto"
	"github.com/vsinha/ptconfig/pkg/application/services/codec"
	"github.com/vsinha/ptconfig/pkg/application/services/performance"
	"github.com/vsinha/ptconfig/pkg/application/services/selection"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
	"github.com/vsinha/ptconfig/pkg/domain/repositories"
	"github.com/vsinha/ptconfig/pkg/domain/services/rules"
	"github.com/vsinha/ptconfig/pkg/infrastructure/events"
)

var (
	// ErrNoModel is returned by operations that need a selected model
	ErrNoModel = errors.New("no model selected")
)

// RejectedError is returned by Choose when the validator refuses an option
type RejectedError struct {
	Category entities.CategoryID
	Code     entities.OptionCode
	Result   rules.Result
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("option %s rejected for %s: %s", e.Code, e.Category, e.Result.Reason)
}

// ServiceConfig holds the collaborators of a Service. Zero fields get
// defaults.
type ServiceConfig struct {
	Messages   messages.Lookup
	EventStore events.Store
	Logger     *zap.Logger
}

// Service opens and mutates configuration sessions over one catalog
type Service struct {
	catalog   repositories.CatalogRepository
	validator *rules.Validator
	codec     *codec.Codec
	engine    *performance.Engine
	events    events.Store
	logger    *zap.Logger
}

// NewService creates a service with key-rendered messages, an in-memory event
// store and a no-op logger
func NewService(catalog repositories.CatalogRepository) *Service {
	return NewServiceWithConfig(catalog, ServiceConfig{})
}

// NewServiceWithConfig creates a service with custom collaborators. Session
// events are echoed to the logger at debug level.
func NewServiceWithConfig(catalog repositories.CatalogRepository, config ServiceConfig) *Service {
	if config.Messages == nil {
		config.Messages = messages.KeyLookup{}
	}
	if config.EventStore == nil {
		config.EventStore = events.NewMemoryStore()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if err := config.EventStore.Subscribe(events.ConfigurationEvents, events.NewAuditLogger(config.Logger)); err != nil {
		config.Logger.Warn("failed to subscribe audit logger", zap.Error(err))
	}

	return &Service{
		catalog:   catalog,
		validator: rules.NewValidator(config.Messages),
		codec:     codec.New(catalog, config.Messages),
		engine:    performance.NewEngine(config.Messages),
		events:    config.EventStore,
		logger:    config.Logger,
	}
}

// Validator returns the validator sessions are checked with
func (s *Service) Validator() *rules.Validator {
	return s.validator
}

// Codec returns the order code codec
func (s *Service) Codec() *codec.Codec {
	return s.codec
}

// Engine returns the performance engine
func (s *Service) Engine() *performance.Engine {
	return s.engine
}

// Events returns the event store sessions append to
func (s *Service) Events() events.Store {
	return s.events
}

// NewSession opens an empty session with a fresh stream id
func (s *Service) NewSession() *Session {
	session := &Session{
		ID:         uuid.NewString(),
		Selections: make(entities.Selections),
		service:    s,
	}
	s.publish(session, events.SessionStartedEvent, events.SessionStarted{SessionID: session.ID})
	s.logger.Debug("session started", zap.String("session", session.ID))
	return session
}

func (s *Service) publish(session *Session, eventType string, data interface{}) {
	if err := s.events.Append(session.ID, events.New(eventType, session.ID, data)); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("session", session.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}

// Summary is everything a host renders for the current session state
type Summary struct {
	OrderCode dto.OrderCode
	// Report is nil when Performance holds the reason it could not be built
	Report      *dto.PerformanceReport
	Performance error
}

// Session is one user's in-progress configuration. A Session is not safe for
// concurrent use.
type Session struct {
	ID             string
	Model          *entities.ProductModel
	Selections     entities.Selections
	Range          entities.CalibratedRange
	SpecialRequest string

	service *Service
}

// SelectModel switches to model id and drops all selections and the
// calibrated range
func (ss *Session) SelectModel(id entities.ModelID) error {
	m, err := ss.service.catalog.GetModel(id)
	if err != nil {
		return fmt.Errorf("failed to select model: %w", err)
	}

	ss.Model = m
	ss.Selections = make(entities.Selections)
	ss.Range = entities.CalibratedRange{}
	ss.service.publish(ss, events.ModelSelectedEvent, events.ModelSelected{ModelID: id})
	ss.service.logger.Debug("model selected", zap.String("session", ss.ID), zap.String("model", string(id)))
	return nil
}

// Choose validates code for category id and applies it with its cascades. A
// change of pressure range resets the calibrated range.
func (ss *Session) Choose(id entities.CategoryID, code entities.OptionCode) error {
	if ss.Model == nil {
		return ErrNoModel
	}

	result := ss.service.validator.Validate(ss.Model, id, code, ss.Selections)
	if !result.Valid {
		ss.service.logger.Debug("option rejected",
			zap.String("session", ss.ID),
			zap.String("category", string(id)),
			zap.String("code", string(code)),
			zap.String("reason", string(result.ReasonKey)))
		return &RejectedError{Category: id, Code: code, Result: result}
	}

	next := selection.Apply(ss.Model, ss.Selections, id, code)
	cascaded := changed(ss.Selections, next, id)
	ss.commit(next)
	ss.service.publish(ss, events.OptionSelectedEvent, events.OptionSelected{Category: id, Code: code, Cascaded: cascaded})
	return nil
}

// Clear unsets category id with its cascades
func (ss *Session) Clear(id entities.CategoryID) error {
	if ss.Model == nil {
		return ErrNoModel
	}

	next := selection.Clear(ss.Model, ss.Selections, id)
	cascaded := changed(ss.Selections, next, id)
	ss.commit(next)
	ss.service.publish(ss, events.OptionClearedEvent, events.OptionCleared{Category: id, Cascaded: cascaded})
	return nil
}

// SetRange stores a calibrated range as typed. It is checked when the
// summary is built, so partial input is accepted.
func (ss *Session) SetRange(r entities.CalibratedRange) {
	ss.Range = r
	ss.service.publish(ss, events.RangeCalibratedEvent, events.RangeCalibrated{Range: r})
}

// SetSpecialRequest stores the free text printed as transmitter line 4
func (ss *Session) SetSpecialRequest(text string) {
	ss.SpecialRequest = text
	ss.service.publish(ss, events.SpecialRequestEvent, events.SpecialRequestUpdated{Text: text})
}

// LoadCode decodes a pasted order code, switches to its model and replaces the
// selections with what was recognized. The calibrated range is dropped.
func (ss *Session) LoadCode(raw string) (*dto.DecodeResult, error) {
	result, err := ss.service.codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	ss.Model = result.Model
	ss.Selections = result.Selections.Clone()
	ss.Range = entities.CalibratedRange{}
	ss.service.publish(ss, events.CodeDecodedEvent, events.CodeDecoded{
		Input:     raw,
		ModelID:   result.ModelID,
		Complete:  result.Complete(),
		Remainder: result.Remainder,
	})

	if !result.Complete() {
		ss.service.logger.Info("order code decoded partially",
			zap.String("session", ss.ID),
			zap.String("stopped_at", string(result.StoppedAt)),
			zap.String("remainder", result.Remainder))
	}
	return result, nil
}

// Options returns every option of category id with its current verdict
func (ss *Session) Options(id entities.CategoryID) ([]rules.OptionState, error) {
	if ss.Model == nil {
		return nil, ErrNoModel
	}
	return ss.service.validator.Options(ss.Model, id, ss.Selections), nil
}

// Summary encodes the order code and evaluates performance for the current
// state. A performance failure is reported in the summary, not as an error.
func (ss *Session) Summary() (*Summary, error) {
	if ss.Model == nil {
		return nil, ErrNoModel
	}

	summary := &Summary{
		OrderCode: ss.service.codec.Encode(ss.Model, ss.Selections, ss.Range, ss.SpecialRequest),
	}
	summary.Report, summary.Performance = ss.service.engine.Evaluate(ss.Model, ss.Selections, ss.Range)
	return summary, nil
}

func (ss *Session) commit(next entities.Selections) {
	if selection.RangeChanged(ss.Selections, next) && !ss.Range.IsUnset() {
		previous := ss.Range
		ss.Range = entities.CalibratedRange{}
		ss.service.publish(ss, events.CalibrationResetEvent, events.CalibrationReset{Previous: previous})
	}
	ss.Selections = next
}

// changed lists categories other than id whose value differs between before
// and after, sorted by id
func changed(before, after entities.Selections, id entities.CategoryID) []entities.CategoryID {
	var out []entities.CategoryID
	for _, c := range allCategories(before, after) {
		if c == id {
			continue
		}
		b, bok := before[c]
		a, aok := after[c]
		if bok != aok || a != b {
			out = append(out, c)
		}
	}
	return out
}

func allCategories(maps ...entities.Selections) []entities.CategoryID {
	seen := make(map[entities.CategoryID]bool)
	var out []entities.CategoryID
	for _, m := range maps {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
