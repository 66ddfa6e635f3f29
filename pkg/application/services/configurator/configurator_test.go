package configurator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/ptconfig/pkg/application/services/performance"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
	"github.com/vsinha/ptconfig/pkg/domain/messages"
	"github.com/vsinha/ptconfig/pkg/infrastructure/events"
	testinghelpers "github.com/vsinha/ptconfig/pkg/infrastructure/testing"
)

func newService(t *testing.T) (*Service, *events.MemoryStore) {
	t.Helper()
	store := events.NewMemoryStore()
	service := NewServiceWithConfig(testinghelpers.BuildCatalogRepository(), ServiceConfig{EventStore: store})
	return service, store
}

func eventTypes(t *testing.T, store events.Store, stream string) []string {
	t.Helper()
	evs, err := store.Stream(stream, 1)
	require.NoError(t, err)
	types := make([]string, 0, len(evs))
	for _, e := range evs {
		types = append(types, e.Type())
	}
	return types
}

func TestSession_RequiresModel(t *testing.T) {
	service, _ := newService(t)
	session := service.NewSession()

	assert.ErrorIs(t, session.Choose(entities.CategoryHousing, "A"), ErrNoModel)
	assert.ErrorIs(t, session.Clear(entities.CategoryHousing), ErrNoModel)
	_, err := session.Summary()
	assert.ErrorIs(t, err, ErrNoModel)
	_, err = session.Options(entities.CategoryHousing)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSession_SelectModelResetsState(t *testing.T) {
	service, _ := newService(t)
	session := service.NewSession()

	require.NoError(t, session.SelectModel("dp"))
	require.NoError(t, session.Choose(entities.CategoryRange, "3"))
	session.SetRange(entities.CalibratedRange{Low: "0", High: "10"})

	require.NoError(t, session.SelectModel("gp"))
	assert.Empty(t, session.Selections)
	assert.True(t, session.Range.IsUnset())
	assert.Equal(t, entities.ModelID("gp"), session.Model.ID)

	err := session.SelectModel("nope")
	require.Error(t, err)
	assert.Equal(t, entities.ModelID("gp"), session.Model.ID, "a failed switch keeps the current model")
}

func TestSession_ChooseRejectsInvalidOption(t *testing.T) {
	service, store := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("dp"))

	err := session.Choose(entities.CategoryConnector, "G1")

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, messages.SelectHousingFirst, rejected.Result.ReasonKey)
	assert.NotContains(t, session.Selections, entities.CategoryConnector)
	assert.NotContains(t, eventTypes(t, store, session.ID), events.OptionSelectedEvent)
}

func TestSession_ChooseCascadesAndRecordsEvents(t *testing.T) {
	service, store := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("dp"))

	require.NoError(t, session.Choose(entities.CategoryProcessConnection, "N12F"))
	require.NoError(t, session.Choose(entities.CategoryWeldNeck, "WM1"))
	require.NoError(t, session.Choose(entities.CategoryManifold, "V0"))

	// A real manifold is blocked while a weld neck is fitted
	var rejected *RejectedError
	require.True(t, errors.As(session.Choose(entities.CategoryManifold, "V3"), &rejected))
	assert.Equal(t, messages.ManifoldConflictsWeldNeck, rejected.Result.ReasonKey)

	require.NoError(t, session.Choose(entities.CategoryWeldNeck, "W0"))
	require.NoError(t, session.Choose(entities.CategoryManifold, "V3"))
	require.NoError(t, session.Choose(entities.CategoryManifoldProcess, "K1"))
	require.NoError(t, session.Clear(entities.CategoryManifold))
	assert.NotContains(t, session.Selections, entities.CategoryManifoldProcess)

	evs, err := store.Stream(session.ID, 1)
	require.NoError(t, err)
	last := evs[len(evs)-1]
	require.Equal(t, events.OptionClearedEvent, last.Type())
	cleared := last.Data().(events.OptionCleared)
	assert.Equal(t, []entities.CategoryID{entities.CategoryManifoldProcess}, cleared.Cascaded)

	assert.Equal(t, []string{
		events.SessionStartedEvent,
		events.ModelSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionSelectedEvent,
		events.OptionClearedEvent,
	}, eventTypes(t, store, session.ID))
}

func TestSession_RangeChangeResetsCalibration(t *testing.T) {
	service, store := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("ap"))
	require.NoError(t, session.Choose(entities.CategoryRange, "1"))
	session.SetRange(entities.CalibratedRange{Low: "0", High: "10"})

	require.NoError(t, session.Choose(entities.CategoryDisplay, "L1"))
	assert.Equal(t, "10", session.Range.High, "other categories keep the calibration")

	require.NoError(t, session.Choose(entities.CategoryRange, "1"))
	assert.Equal(t, "10", session.Range.High, "re-selecting the same range keeps the calibration")

	require.NoError(t, session.Choose(entities.CategoryRange, "2"))
	assert.True(t, session.Range.IsUnset())
	assert.Contains(t, eventTypes(t, store, session.ID), events.CalibrationResetEvent)
}

func TestSession_Summary(t *testing.T) {
	service, _ := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("ap"))

	summary, err := session.Summary()
	require.NoError(t, err)
	assert.Equal(t, "SS-2088A", summary.OrderCode.Line1)
	assert.Nil(t, summary.Report)

	var perr *performance.Error
	require.True(t, errors.As(summary.Performance, &perr))
	assert.Equal(t, performance.KindRangeNotSelected, perr.Kind)

	require.NoError(t, session.Choose(entities.CategoryRange, "1"))
	session.SetRange(entities.CalibratedRange{Low: "0", High: "10"})
	session.SetSpecialRequest("tag FT-7")

	summary, err = session.Summary()
	require.NoError(t, err)
	require.NoError(t, summary.Performance)
	assert.Equal(t, "0 ~ 10 kPa", summary.OrderCode.TransmitterLine3)
	assert.Equal(t, "tag FT-7", summary.OrderCode.TransmitterLine4)
	assert.Equal(t, 4.0, summary.Report.EffectiveRatio())
}

func TestSession_LoadCode(t *testing.T) {
	service, store := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("ap"))
	session.SetRange(entities.CalibratedRange{Low: "0", High: "10"})

	result, err := session.LoadCode("SS-3051G422SN12MBP-X0L2ZZ")
	require.NoError(t, err)
	assert.False(t, result.Complete())
	assert.Equal(t, entities.ModelID("gp"), session.Model.ID)
	assert.Equal(t, entities.OptionCode("L2"), session.Selections[entities.CategoryDisplay])
	assert.True(t, session.Range.IsUnset())

	evs, err := store.Stream(session.ID, 1)
	require.NoError(t, err)
	decoded := evs[len(evs)-1].Data().(events.CodeDecoded)
	assert.Equal(t, "ZZ", decoded.Remainder)

	_, err = session.LoadCode("unknown")
	require.Error(t, err)
	assert.Equal(t, entities.ModelID("gp"), session.Model.ID)
}

func TestSession_LogsPartialDecode(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	service := NewServiceWithConfig(testinghelpers.BuildCatalogRepository(), ServiceConfig{Logger: zap.New(core)})

	_, err := service.NewSession().LoadCode("SS-3051D9")
	require.NoError(t, err)

	entries := logs.FilterMessage("order code decoded partially").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(entities.CategoryRange), entries[0].ContextMap()["stopped_at"])
}

func TestSession_Options(t *testing.T) {
	service, _ := newService(t)
	session := service.NewSession()
	require.NoError(t, session.SelectModel("gp"))
	require.NoError(t, session.Choose(entities.CategoryHousing, "D"))

	states, err := session.Options(entities.CategoryConnector)
	require.NoError(t, err)
	for _, st := range states {
		assert.Equal(t, session.Model.Rules.ConnectorThread(st.Option.OptionCode()) == entities.ThreadNPT, st.Valid,
			"connector %s", st.Option.OptionCode())
	}
}

func TestService_AuditsSessionEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	service := NewServiceWithConfig(testinghelpers.BuildCatalogRepository(), ServiceConfig{Logger: zap.New(core)})

	session := service.NewSession()
	require.NoError(t, session.SelectModel("gp"))

	audited := logs.FilterMessage("session event").All()
	require.Len(t, audited, 2)
	assert.Equal(t, events.SessionStartedEvent, audited[0].ContextMap()["type"])
	assert.Equal(t, events.ModelSelectedEvent, audited[1].ContextMap()["type"])
}
