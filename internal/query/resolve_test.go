package query

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

func taskWithID(id, title string) tasks.Task {
	return tasks.Task{
		ID:        uuid.MustParse(id),
		Title:     title,
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Priority:  tasks.PriorityMedium,
	}
}

func resolveFixture() []tasks.Task {
	return []tasks.Task{
		taskWithID("abcd1111-0000-4000-8000-000000000001", "first"),
		taskWithID("abcd2222-0000-4000-8000-000000000002", "second"),
		taskWithID("ef012345-0000-4000-8000-000000000003", "third"),
	}
}

func TestResolveUniquePrefix(t *testing.T) {
	list := resolveFixture()

	i, err := Resolve(list, "abcd1")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = Resolve(list, "ef01")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = Resolve(list, list[1].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, i, "full id resolves")
}

func TestResolveAmbiguous(t *testing.T) {
	list := resolveFixture()

	_, err := Resolve(list, "abcd")
	require.ErrorIs(t, err, ErrAmbiguous)

	var amb *AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, "abcd", amb.Input)
	assert.Equal(t, []Match{
		{ID: list[0].ID, Title: "first"},
		{ID: list[1].ID, Title: "second"},
	}, amb.Matches)
}

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve(resolveFixture(), "9999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(nil, "abcd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	_, err := Resolve(resolveFixture(), "ABCD1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTooShortRegardlessOfMatches(t *testing.T) {
	for _, in := range []string{"", "a", "ab", "abc", "ef0", "zzz"} {
		_, err := Resolve(resolveFixture(), in)
		assert.ErrorIs(t, err, ErrTooShort, "input %q", in)
	}
}

func TestResolveEveryUniquePrefix(t *testing.T) {
	list := make([]tasks.Task, 50)
	for i := range list {
		list[i] = tasks.Task{ID: uuid.New(), Title: "t"}
	}

	for i := range list {
		full := list[i].ID.String()
		for n := MinPrefixLength; n <= len(full); n++ {
			prefix := full[:n]
			var want []int
			for j := range list {
				if list[j].ID.String()[:n] == prefix {
					want = append(want, j)
				}
			}

			got, err := Resolve(list, prefix)
			if len(want) == 1 {
				require.NoError(t, err)
				assert.Equal(t, i, got)
				continue
			}
			var amb *AmbiguousError
			require.True(t, errors.As(err, &amb), "prefix %q", prefix)
			assert.Len(t, amb.Matches, len(want))
		}
	}
}
