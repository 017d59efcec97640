package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exercisetracker/internal/tracker/adapters/memory"
	"exercisetracker/internal/tracker/app"
	"exercisetracker/internal/tracker/app/dto"
	"exercisetracker/internal/tracker/domain/calendar"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/api"
)

var fixedNow = time.Date(2026, time.October, 16, 15, 4, 5, 0, time.UTC)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

// missCache - кэш, который всегда промахивается и принимает запись.
func missCache() *mockCache {
	c := new(mockCache)
	c.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return c
}

func newUseCase(t *testing.T) api.TrackerUseCase {
	t.Helper()
	return app.NewTrackerUseCase(memory.NewUserRepository(), missCache(), calendar.New(time.UTC),
		app.WithClock(func() time.Time { return fixedNow }))
}

func str(value string) dto.Field {
	return dto.FieldFromString(value)
}

func createUser(t *testing.T, uc api.TrackerUseCase, name string) *dto.UserResponse {
	t.Helper()
	user, err := uc.CreateUser(context.Background(), &dto.CreateUserRequest{Username: str(name)})
	require.NoError(t, err)
	return user
}

func addExercise(t *testing.T, uc api.TrackerUseCase, userID, description, duration, date string) *dto.ExerciseResponse {
	t.Helper()
	resp, err := uc.AddExercise(context.Background(), userID, &dto.AddExerciseRequest{
		Description: str(description),
		Duration:    str(duration),
		Date:        str(date),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	t.Run("returns fresh id and username", func(t *testing.T) {
		first := createUser(t, uc, "alice")
		second := createUser(t, uc, "alice")

		assert.NotEmpty(t, first.ID)
		assert.Equal(t, "alice", first.Username)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("missing username is a validation error", func(t *testing.T) {
		before, err := uc.ListUsers(ctx)
		require.NoError(t, err)

		for _, field := range []dto.Field{{}, str(""), dto.FieldFromJSON(nil), dto.FieldFromJSON(false)} {
			user, err := uc.CreateUser(ctx, &dto.CreateUserRequest{Username: field})
			assert.Nil(t, user)
			assert.ErrorIs(t, err, entities.ErrValidation)
			assert.ErrorIs(t, err, entities.ErrUsernameRequired)
		}

		after, err := uc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestListUsers(t *testing.T) {
	uc := newUseCase(t)

	users, err := uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	alice := createUser(t, uc, "alice")
	bob := createUser(t, uc, "bob")

	users, err = uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.UserResponse{*alice, *bob}, users)
}

func TestAddExercise(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	alice := createUser(t, uc, "alice")

	t.Run("formats supplied date", func(t *testing.T) {
		resp := addExercise(t, uc, alice.ID, "run", "30", "2023-01-15")

		assert.Equal(t, &dto.ExerciseResponse{
			ID:          alice.ID,
			Username:    "alice",
			Description: "run",
			Duration:    30,
			Date:        "Sun Jan 15 2023",
		}, resp)
	})

	t.Run("defaults to today", func(t *testing.T) {
		resp := addExercise(t, uc, alice.ID, "swim", "15", "")
		assert.Equal(t, "Fri Oct 16 2026", resp.Date)
	})

	t.Run("invalid date is kept as text", func(t *testing.T) {
		resp := addExercise(t, uc, alice.ID, "yoga", "20", "someday")
		assert.Equal(t, calendar.InvalidText, resp.Date)
	})

	t.Run("non-numeric duration becomes NaN", func(t *testing.T) {
		resp := addExercise(t, uc, alice.ID, "walk", "half an hour", "2023-01-02")
		assert.True(t, math.IsNaN(float64(resp.Duration)))
	})

	t.Run("numeric JSON date is epoch milliseconds", func(t *testing.T) {
		resp, err := uc.AddExercise(ctx, alice.ID, &dto.AddExerciseRequest{
			Description: str("row"),
			Duration:    dto.FieldFromJSON(float64(10)),
			Date:        dto.FieldFromJSON(float64(1673740800000)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Sun Jan 15 2023", resp.Date)
		assert.Equal(t, dto.Duration(10), resp.Duration)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, err := uc.AddExercise(ctx, "missing", &dto.AddExerciseRequest{
			Description: str("run"),
			Duration:    str("30"),
		})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("unknown user wins over missing fields", func(t *testing.T) {
		_, err := uc.AddExercise(ctx, "missing", &dto.AddExerciseRequest{})
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		requests := []*dto.AddExerciseRequest{
			{Duration: str("30")},
			{Description: str("run")},
			{Description: str("run"), Duration: dto.FieldFromJSON(float64(0))},
			{},
		}
		for _, req := range requests {
			resp, err := uc.AddExercise(ctx, alice.ID, req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, entities.ErrExerciseFieldsRequired)
		}
	})
}

func TestGetLogs_EndToEnd(t *testing.T) {
	uc := newUseCase(t)
	alice := createUser(t, uc, "alice")
	addExercise(t, uc, alice.ID, "run", "30", "2023-01-01")

	logs, err := uc.GetLogs(context.Background(), alice.ID, &dto.LogsQuery{})
	require.NoError(t, err)

	assert.Equal(t, &dto.LogsResponse{
		ID:       alice.ID,
		Username: "alice",
		Count:    1,
		Log:      []dto.LogEntry{{Description: "run", Duration: 30, Date: "Sun Jan 01 2023"}},
	}, logs)
}

func TestGetLogs_Filters(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	alice := createUser(t, uc, "alice")

	addExercise(t, uc, alice.ID, "a", "1", "2023-01-05")
	addExercise(t, uc, alice.ID, "b", "2", "2023-01-01")
	addExercise(t, uc, alice.ID, "c", "3", "2023-01-10")
	addExercise(t, uc, alice.ID, "d", "4", "not a date")
	addExercise(t, uc, alice.ID, "e", "5", "2023-01-07")

	descriptions := func(resp *dto.LogsResponse) []string {
		result := make([]string, len(resp.Log))
		for i, e := range resp.Log {
			result[i] = e.Description
		}
		return result
	}

	tests := []struct {
		name     string
		query    dto.LogsQuery
		expected []string
	}{
		{"no filters keeps insertion order", dto.LogsQuery{}, []string{"a", "b", "c", "d", "e"}},
		{"from is inclusive", dto.LogsQuery{From: "2023-01-05"}, []string{"a", "c", "e"}},
		{"to is inclusive", dto.LogsQuery{To: "2023-01-05"}, []string{"a", "b"}},
		{"range", dto.LogsQuery{From: "2023-01-02", To: "2023-01-09"}, []string{"a", "e"}},
		{"limit after filtering", dto.LogsQuery{From: "2023-01-01", Limit: "2"}, []string{"a", "b"}},
		{"limit only", dto.LogsQuery{Limit: "3"}, []string{"a", "b", "c"}},
		{"limit zero", dto.LogsQuery{Limit: "0"}, []string{}},
		{"limit beyond length", dto.LogsQuery{Limit: "100"}, []string{"a", "b", "c", "d", "e"}},
		{"non-numeric limit", dto.LogsQuery{Limit: "abc"}, []string{}},
		{"negative limit counts from end", dto.LogsQuery{Limit: "-1"}, []string{"a", "b", "c", "d"}},
		{"unparsable from drops everything", dto.LogsQuery{From: "garbage"}, []string{}},
		{"empty range", dto.LogsQuery{From: "2023-02-01", To: "2023-01-01"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.GetLogs(ctx, alice.ID, &tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, descriptions(resp))
			assert.Equal(t, len(resp.Log), resp.Count)
		})
	}

	t.Run("stored log is not modified by filtering", func(t *testing.T) {
		resp, err := uc.GetLogs(ctx, alice.ID, &dto.LogsQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, descriptions(resp))
	})
}

func TestGetLogs_UnknownUser(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.GetLogs(context.Background(), "missing", &dto.LogsQuery{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestGetLogs_Cache(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(memory.WithIDGenerator(func() string { return "u1" }))

	t.Run("serves cached response", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", mock.Anything, "tracker:logs:u1:0?from=&limit=&to=").
			Return(`{"id":"u1","username":"cached","count":1,"log":[{"description":"x","duration":null,"date":"Sun Jan 01 2023"}]}`, true, nil).Once()

		uc := app.NewTrackerUseCase(repo, c, calendar.New(nil))
		_, err := uc.CreateUser(ctx, &dto.CreateUserRequest{Username: str("alice")})
		require.NoError(t, err)

		resp, err := uc.GetLogs(ctx, "u1", &dto.LogsQuery{})
		require.NoError(t, err)
		assert.Equal(t, "cached", resp.Username)
		require.Len(t, resp.Log, 1)
		assert.True(t, math.IsNaN(float64(resp.Log[0].Duration)))
		c.AssertExpectations(t)
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("redis down")).Once()
		c.On("Set", mock.Anything, mock.Anything, mock.Anything, 5*time.Minute).Return(errors.New("redis down")).Once()

		uc := app.NewTrackerUseCase(repo, c, calendar.New(nil), app.WithCacheTTL(5*time.Minute))

		resp, err := uc.GetLogs(ctx, "u1", &dto.LogsQuery{Limit: "1"})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Log)
		c.AssertExpectations(t)
	})

	t.Run("corrupted entry is evicted and recomputed", func(t *testing.T) {
		const key = "tracker:logs:u1:0?from=&limit=&to="
		c := new(mockCache)
		c.On("Get", mock.Anything, key).Return("{not json", true, nil).Once()
		c.On("Delete", mock.Anything, key).Return(nil).Once()
		c.On("Set", mock.Anything, key, mock.Anything, time.Duration(0)).Return(nil).Once()

		uc := app.NewTrackerUseCase(repo, c, calendar.New(nil))

		resp, err := uc.GetLogs(ctx, "u1", &dto.LogsQuery{})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		c.AssertExpectations(t)
	})

	t.Run("failed eviction does not fail the request", func(t *testing.T) {
		c := new(mockCache)
		c.On("Get", mock.Anything, mock.Anything).Return("[]", true, nil).Once()
		c.On("Delete", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
		c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		uc := app.NewTrackerUseCase(repo, c, calendar.New(nil))

		resp, err := uc.GetLogs(ctx, "u1", &dto.LogsQuery{})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		c.AssertExpectations(t)
	})
}
