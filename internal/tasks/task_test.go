package tasks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(title string) Task {
	return Task{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Priority:  PriorityMedium,
	}
}

func TestCompleteIsOneWay(t *testing.T) {
	task := newTask("Write report")
	first := time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, task.Complete(first))
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, first, *task.CompletedAt)

	err := task.Complete(first.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyComplete)
	assert.Equal(t, first, *task.CompletedAt, "second completion must not move completedAt")
}

func TestCompleteClampsToCreatedAt(t *testing.T) {
	task := newTask("Clock skew")
	require.NoError(t, task.Complete(task.CreatedAt.Add(-time.Minute)))
	assert.Equal(t, task.CreatedAt, *task.CompletedAt)
	assert.Zero(t, task.Elapsed())
}

func TestElapsed(t *testing.T) {
	task := newTask("Elapsed")
	assert.Zero(t, task.Elapsed())
	require.NoError(t, task.Complete(task.CreatedAt.Add(90*time.Minute)))
	assert.Equal(t, 90*time.Minute, task.Elapsed())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{" HIGH ", PriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityRank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Zero(t, Priority("bogus").Rank())
}

func TestNormalizeTitle(t *testing.T) {
	got, err := NormalizeTitle("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got)

	_, err = NormalizeTitle("   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NormalizeTitle(strings.Repeat("é", MaxTitleLength))
	assert.NoError(t, err, "length is counted in code points")

	_, err = NormalizeTitle(strings.Repeat("x", MaxTitleLength+1))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field)
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription(strings.Repeat("d", MaxDescriptionLength)))
	assert.ErrorIs(t, ValidateDescription(strings.Repeat("d", MaxDescriptionLength+1)), ErrValidation)
}

func TestNormalizeTags(t *testing.T) {
	got, err := NormalizeTags([]string{"Work", "home", "WORK", " urgent_1 "})
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "home", "urgent_1"}, got)

	got, err = NormalizeTags(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := []string{"", "has space", "semi;colon", strings.Repeat("a", MaxTagLength+1)}
	for _, tag := range bad {
		_, err := NormalizeTags([]string{tag})
		assert.ErrorIs(t, err, ErrValidation, "tag %q", tag)
	}

	many := make([]string, MaxTags+1)
	for i := range many {
		many[i] = "t" + string(rune('a'+i))
	}
	_, err = NormalizeTags(many)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateDueDate(t *testing.T) {
	today := Date{2026, time.October, 19}
	assert.NoError(t, ValidateDueDate(today, today))
	assert.NoError(t, ValidateDueDate(today.AddDays(3), today))
	assert.ErrorIs(t, ValidateDueDate(today.AddDays(-1), today), ErrValidation)
}

func TestTaskValidate(t *testing.T) {
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		mutate func(*Task)
		field  string
	}{
		{"missing id", func(t *Task) { t.ID = uuid.Nil }, "id"},
		{"blank title", func(t *Task) { t.Title = " " }, "title"},
		{"untrimmed title", func(t *Task) { t.Title = " x" }, "title"},
		{"bad priority", func(t *Task) { t.Priority = "urgent" }, "priority"},
		{"completed without time", func(t *Task) { t.Completed = true }, "completedAt"},
		{"time without completed", func(t *Task) { t.CompletedAt = &at }, "completedAt"},
		{"completed before created", func(t *Task) {
			before := t.CreatedAt.Add(-time.Hour)
			t.Completed, t.CompletedAt = true, &before
		}, "completedAt"},
		{"duplicate tags", func(t *Task) { t.Tags = []string{"a", "a"} }, "tags"},
		{"uppercase tag", func(t *Task) { t.Tags = []string{"Work"} }, "tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask("Valid")
			require.NoError(t, task.Validate())
			tt.mutate(&task)
			err := task.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateCollectionRejectsDuplicateIDs(t *testing.T) {
	a := newTask("A")
	b := newTask("B")
	b.ID = a.ID
	assert.ErrorIs(t, ValidateCollection([]Task{a, b}), ErrValidation)
	assert.NoError(t, ValidateCollection([]Task{a, newTask("C")}))
}

func TestCloneDoesNotAlias(t *testing.T) {
	task := newTask("Clone")
	due := Date{2026, time.December, 1}
	task.DueDate = &due
	task.Tags = []string{"a"}

	c := task.Clone()
	c.Tags[0] = "b"
	c.DueDate.Day = 2

	assert.Equal(t, "a", task.Tags[0])
	assert.Equal(t, 1, task.DueDate.Day)
}
