package service

import (
	"context"
	"sync"
	"testing"

	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/internal/repository/specification"
	"ai-transcript-notes-be/internal/repository/unitofwork"
	"ai-transcript-notes-be/internal/testutil"
	"ai-transcript-notes-be/pkg/events"
	"ai-transcript-notes-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	uowFactory unitofwork.RepositoryFactory
	provider   *scriptedProvider
	publisher  *recordingPublisher
	extraction IExtractionService
	messages   IMessageService
	entities   IEntityService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewTestDB(t)

	s := &testServices{
		uowFactory: unitofwork.NewRepositoryFactory(db),
		provider:   &scriptedProvider{name: llm.ProviderOllama, response: "[]"},
		publisher:  &recordingPublisher{},
	}
	log := logger.NewNopLogger()
	factory := newStubAdapterFactory(llm.ProviderOllama, s.provider)
	s.extraction = NewExtractionService(s.uowFactory, factory, s.publisher, log)
	s.messages = NewMessageService(s.uowFactory, s.extraction, s.publisher, log)
	s.entities = NewEntityService(s.uowFactory, s.publisher, log)
	return s
}

func (s *testServices) createMessage(t *testing.T, ts, transcript string) *dto.CreateMessageResponse {
	t.Helper()
	res, err := s.messages.Create(context.Background(), &dto.CreateMessageRequest{Timestamp: ts, Transcript: transcript})
	require.NoError(t, err)
	return res
}

func (s *testServices) links(t *testing.T) []entity.MessageEntity {
	t.Helper()
	all, err := s.uowFactory.NewUnitOfWork(context.Background()).MessageEntityRepository().FindAll(context.Background())
	require.NoError(t, err)
	return all
}

func labels(list []dto.EntityResponse) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Label
	}
	return out
}

func TestExtraction_DedupesWithinAndAcrossMessages(t *testing.T) {
	s := newTestServices(t)
	s.provider.response = `[{"type":"person","label":"Ann"},{"type":"person","label":"Ann"},{"type":"company","label":"Acme"}]`

	first := s.createMessage(t, "2024-03-01T09:00:00", "Ann from Acme called")
	second := s.createMessage(t, "2024-03-01T10:00:00", "Ann again")

	assert.Empty(t, first.Warning)
	assert.ElementsMatch(t, []string{"Ann", "Acme"}, labels(first.Entities))
	assert.Equal(t, first.Entities[0].Id, second.Entities[0].Id)

	all, err := s.entities.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, s.links(t), 4)
}

func TestExtraction_ReextractKeepsLinksAndStoredColors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"person","label":"Ann"}]`

	created := s.createMessage(t, "2024-03-01T09:00:00", "Ann")
	require.Len(t, created.Entities, 1)
	annId := created.Entities[0].Id

	color := "#123456"
	require.NoError(t, s.entities.Update(ctx, &dto.UpdateEntityRequest{Id: annId, Color: &color}))

	res, err := s.messages.ExtractEntities(ctx, created.Id)
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, annId, res.Entities[0].Id)
	assert.Equal(t, "#123456", res.Entities[0].Color)
	assert.Len(t, s.links(t), 1)
}

func TestExtraction_EmptyResultClearsAssociations(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"location","label":"Paris"}]`

	created := s.createMessage(t, "2024-03-01T09:00:00", "Trip to Paris")
	require.Len(t, created.Entities, 1)

	s.provider.response = "Nothing to report."
	transcript := "Nothing happened"
	res, err := s.messages.Update(ctx, &dto.UpdateMessageRequest{Id: created.Id, Transcript: &transcript})
	require.NoError(t, err)
	assert.Empty(t, res.Entities)
	assert.Empty(t, res.Warning)

	current, err := s.messages.Entities(ctx, created.Id)
	require.NoError(t, err)
	assert.Empty(t, current)

	// the entity row itself is kept
	all, err := s.entities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestExtraction_UnreachableBackendKeepsPreviousLinks(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"person","label":"Ann"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "Ann")
	require.Len(t, created.Entities, 1)

	s.provider.pingErr = errBackendDown
	transcript := "Ann and Bob"
	res, err := s.messages.Update(ctx, &dto.UpdateMessageRequest{Id: created.Id, Transcript: &transcript})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Entities)
	assert.Equal(t, UnreachableWarning(llm.ProviderOllama), res.Warning)
	assert.Len(t, s.links(t), 1)
	assert.Contains(t, s.publisher.types(), events.ExtractionDegraded)
}

func TestExtraction_GenerationFailureIsSoft(t *testing.T) {
	s := newTestServices(t)
	s.provider.genErr = errBackendDown

	res := s.createMessage(t, "2024-03-01T09:00:00", "Ann")
	assert.True(t, res.Success)
	assert.NotZero(t, res.Id)
	assert.Empty(t, res.Entities)
	assert.NotEmpty(t, res.Warning)
}

func TestMessageService_ListGroupsByDay(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	s.createMessage(t, "2024-03-01T09:00:00", "a")
	s.createMessage(t, "2024-03-01T17:30:00", "b")
	s.createMessage(t, "2024-03-03T08:15:00", "c")

	days, err := s.messages.List(ctx, dto.ListMessagesRequest{})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-03", days[0].Date)
	assert.Equal(t, "2024-03-01", days[1].Date)
	require.Len(t, days[1].Messages, 2)
	assert.Equal(t, "b", days[1].Messages[0].Transcript)
	assert.Equal(t, "17:30", days[1].Messages[0].FormattedTime)

	t.Run("range applies only with both bounds", func(t *testing.T) {
		days, err := s.messages.List(ctx, dto.ListMessagesRequest{StartDate: "2024-03-02"})
		require.NoError(t, err)
		assert.Len(t, days, 2)

		days, err = s.messages.List(ctx, dto.ListMessagesRequest{StartDate: "2024-03-02", EndDate: "2024-03-04"})
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "2024-03-03", days[0].Date)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := s.messages.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalMessages)
		assert.Equal(t, "2024-03-01T09:00:00", *stats.FirstMessage)
		assert.Equal(t, "2024-03-03T08:15:00", *stats.LastMessage)
	})
}

func TestMessageService_Update(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"topic","label":"Budget"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "Budget review")

	t.Run("no fields", func(t *testing.T) {
		_, err := s.messages.Update(ctx, &dto.UpdateMessageRequest{Id: created.Id})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("missing message", func(t *testing.T) {
		ts := "2024-03-02T09:00:00"
		_, err := s.messages.Update(ctx, &dto.UpdateMessageRequest{Id: 9999, Timestamp: &ts})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("timestamp only skips extraction", func(t *testing.T) {
		before := len(s.provider.prompts)
		ts := "2024-03-02T09:00:00"
		res, err := s.messages.Update(ctx, &dto.UpdateMessageRequest{Id: created.Id, Timestamp: &ts})
		require.NoError(t, err)
		assert.Equal(t, []string{"Budget"}, labels(res.Entities))
		assert.Len(t, s.provider.prompts, before)
	})
}

func TestMessageService_Delete(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"topic","label":"Budget"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "Budget review")

	require.NoError(t, s.messages.Delete(ctx, created.Id))
	assert.Empty(t, s.links(t))
	assert.True(t, apperror.IsNotFound(s.messages.Delete(ctx, created.Id)))

	_, err := s.messages.Entities(ctx, created.Id)
	assert.True(t, apperror.IsNotFound(err))
	_, err = s.messages.ExtractEntities(ctx, created.Id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestEntityService_Update(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"person","label":"Jon"},{"type":"person","label":"John"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "Jon and John")
	require.Len(t, created.Entities, 2)

	var jonId int64
	for _, e := range created.Entities {
		if e.Label == "Jon" {
			jonId = e.Id
		}
	}

	t.Run("empty", func(t *testing.T) {
		err := s.entities.Update(ctx, &dto.UpdateEntityRequest{Id: jonId})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("not found", func(t *testing.T) {
		label := "X"
		err := s.entities.Update(ctx, &dto.UpdateEntityRequest{Id: 9999, Label: &label})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("collision", func(t *testing.T) {
		label := "John"
		err := s.entities.Update(ctx, &dto.UpdateEntityRequest{Id: jonId, Label: &label})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("rename", func(t *testing.T) {
		label := "Jonathan"
		typ := "company"
		require.NoError(t, s.entities.Update(ctx, &dto.UpdateEntityRequest{Id: jonId, Label: &label, Type: &typ}))

		list, err := s.entities.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "company", list[0].Type)
		assert.Equal(t, "Jonathan", list[0].Label)
		assert.Contains(t, s.publisher.types(), events.EntityUpdated)
	})
}

func TestEntityService_Merge(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	s.provider.response = `[{"type":"person","label":"Jon Smith"}]`
	m1 := s.createMessage(t, "2024-03-01T09:00:00", "Jon Smith")
	s.provider.response = `[{"type":"person","label":"John Smith"}]`
	m2 := s.createMessage(t, "2024-03-01T10:00:00", "John Smith")
	s.provider.response = `[{"type":"person","label":"Jon Smith"},{"type":"person","label":"John Smith"}]`
	m3 := s.createMessage(t, "2024-03-01T11:00:00", "Both")

	a := m1.Entities[0].Id
	b := m2.Entities[0].Id

	res, err := s.entities.Merge(ctx, &dto.MergeEntitiesRequest{
		EntityIds:    []int64{a, b},
		MergedEntity: &dto.MergedEntityFields{Type: "person", Label: "John Smith", Color: "#00FF00"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEqual(t, a, res.MergedId)
	assert.NotEqual(t, b, res.MergedId)

	all, err := s.entities.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, res.MergedId, all[0].Id)
	assert.Equal(t, "#00FF00", all[0].Color)

	links := s.links(t)
	assert.Len(t, links, 3, "one link per message, no duplicates")
	for _, l := range links {
		assert.Equal(t, res.MergedId, l.EntityId)
	}
	for _, id := range []int64{m1.Id, m2.Id, m3.Id} {
		list, err := s.messages.Entities(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"John Smith"}, labels(list))
	}
	assert.Contains(t, s.publisher.types(), events.EntitiesMerged)
}

func TestEntityService_MergeFailuresRollBack(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"person","label":"A"},{"type":"person","label":"B"},{"type":"person","label":"C"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "A B C")
	ids := map[string]int64{}
	for _, e := range created.Entities {
		ids[e.Label] = e.Id
	}

	t.Run("single id", func(t *testing.T) {
		_, err := s.entities.Merge(ctx, &dto.MergeEntitiesRequest{
			EntityIds:    []int64{ids["A"]},
			MergedEntity: &dto.MergedEntityFields{Type: "person", Label: "Z", Color: "#000000"},
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.entities.Merge(ctx, &dto.MergeEntitiesRequest{
			EntityIds:    []int64{ids["A"], 9999},
			MergedEntity: &dto.MergedEntityFields{Type: "person", Label: "Z", Color: "#000000"},
		})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("target collides with a non-source entity", func(t *testing.T) {
		_, err := s.entities.Merge(ctx, &dto.MergeEntitiesRequest{
			EntityIds:    []int64{ids["A"], ids["B"]},
			MergedEntity: &dto.MergedEntityFields{Type: "person", Label: "C", Color: "#000000"},
		})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	all, err := s.entities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Len(t, s.links(t), 3)
}

func TestEntityService_ConcurrentMergesOfSameSources(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.provider.response = `[{"type":"person","label":"A"},{"type":"person","label":"B"}]`
	created := s.createMessage(t, "2024-03-01T09:00:00", "A B")
	ids := []int64{created.Entities[0].Id, created.Entities[1].Id}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.entities.Merge(ctx, &dto.MergeEntitiesRequest{
				EntityIds:    ids,
				MergedEntity: &dto.MergedEntityFields{Type: "person", Label: "AB", Color: "#000000"},
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
			assert.True(t, apperror.IsNotFound(err))
		}
	}
	assert.Equal(t, 1, failures)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	merged, err := uow.NamedEntityRepository().FindAll(ctx, specification.ByTypeThenLabel{})
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "AB", merged[0].Label)
	assert.Len(t, s.links(t), 1)
}

func TestEntityService_FindOrCreateIsIdempotent(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	first, err := s.entities.FindOrCreate(ctx, "person", "Ann", "#FF5733")
	require.NoError(t, err)
	second, err := s.entities.FindOrCreate(ctx, "person", "Ann", "#000000")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, err := s.entities.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "#FF5733", list[0].Color)
}
