package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

var (
	today = tasks.Date{Year: 2026, Month: time.October, Day: 19}
	base  = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	title     string
	priority  tasks.Priority
	tags      []string
	completed bool
	due       *tasks.Date
	offset    time.Duration
}

func build(fixtures ...fixture) []tasks.Task {
	list := make([]tasks.Task, 0, len(fixtures))
	for i, s := range fixtures {
		p := s.priority
		if p == "" {
			p = tasks.PriorityMedium
		}
		t := tasks.Task{
			ID:        uuid.New(),
			Title:     s.title,
			CreatedAt: base.Add(time.Duration(i)*time.Minute + s.offset),
			Priority:  p,
			Tags:      s.tags,
			DueDate:   s.due,
		}
		if s.completed {
			at := t.CreatedAt.Add(time.Hour)
			t.Completed, t.CompletedAt = true, &at
		}
		list = append(list, t)
	}
	return list
}

func titles(list []*tasks.Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Title
	}
	return out
}

func day(offset int) *tasks.Date {
	d := today.AddDays(offset)
	return &d
}

func TestFilterConjunction(t *testing.T) {
	list := build(
		fixture{title: "A", priority: tasks.PriorityHigh, tags: []string{"work"}},
		fixture{title: "B", priority: tasks.PriorityHigh, tags: []string{"home"}, completed: true},
		fixture{title: "C", priority: tasks.PriorityLow, tags: []string{"work"}},
	)

	got := Apply(list, Filter{
		Status:   StatusIncomplete,
		Priority: tasks.PriorityHigh,
		Tags:     []string{"work"},
	}, SortCreatedAt)

	assert.Equal(t, []string{"A"}, titles(got))
}

func TestFilterStatus(t *testing.T) {
	list := build(
		fixture{title: "open"},
		fixture{title: "done", completed: true},
	)
	assert.Equal(t, []string{"open", "done"}, titles(Apply(list, Filter{}, SortCreatedAt)))
	assert.Equal(t, []string{"done"}, titles(Apply(list, Filter{Status: StatusComplete}, SortCreatedAt)))
	assert.Equal(t, []string{"open"}, titles(Apply(list, Filter{Status: StatusIncomplete}, SortCreatedAt)))
}

func TestFilterTagsAreAnyOf(t *testing.T) {
	list := build(
		fixture{title: "work", tags: []string{"work"}},
		fixture{title: "home", tags: []string{"home", "garden"}},
		fixture{title: "none"},
	)
	got := Apply(list, Filter{Tags: []string{"WORK", "garden"}}, SortCreatedAt)
	assert.Equal(t, []string{"work", "home"}, titles(got))
}

func TestFilterDueBuckets(t *testing.T) {
	list := build(
		fixture{title: "yesterday", due: day(-1)},
		fixture{title: "today", due: day(0)},
		fixture{title: "in3", due: day(3)},
		fixture{title: "in10", due: day(10)},
		fixture{title: "undated"},
	)

	tests := []struct {
		name string
		due  DueFilter
		want []string
	}{
		{"any", DueFilter{}, []string{"yesterday", "today", "in3", "in10", "undated"}},
		{"overdue", DueFilter{Bucket: DueOverdue}, []string{"yesterday"}},
		{"today", DueFilter{Bucket: DueToday}, []string{"today"}},
		{"within 3", DueFilter{Bucket: DueWithin, Days: 3}, []string{"today", "in3"}},
		{"within 3 with undated", DueFilter{Bucket: DueWithin, Days: 3, IncludeUndated: true}, []string{"today", "in3", "undated"}},
		{"overdue with undated", DueFilter{Bucket: DueOverdue, IncludeUndated: true}, []string{"yesterday", "undated"}},
		{"none", DueFilter{Bucket: DueNone}, []string{"undated"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(list, Filter{Due: tt.due, Today: today}, SortCreatedAt)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSortByPriority(t *testing.T) {
	list := build(
		fixture{title: "medium", priority: tasks.PriorityMedium},
		fixture{title: "high", priority: tasks.PriorityHigh},
		fixture{title: "low", priority: tasks.PriorityLow},
	)
	assert.Equal(t, []string{"high", "medium", "low"}, titles(Apply(list, Filter{}, SortPriority)))
}

func TestSortByDueDatePutsUndatedLast(t *testing.T) {
	list := build(
		fixture{title: "undated"},
		fixture{title: "later", due: day(5)},
		fixture{title: "sooner", due: day(1)},
		fixture{title: "undated2"},
	)
	assert.Equal(t, []string{"sooner", "later", "undated", "undated2"}, titles(Apply(list, Filter{}, SortDueDate)))
}

func TestSortByCreatedAtIgnoresStorageOrder(t *testing.T) {
	list := build(
		fixture{title: "newest", offset: time.Hour},
		fixture{title: "oldest", offset: -time.Hour},
		fixture{title: "middle"},
	)
	assert.Equal(t, []string{"oldest", "middle", "newest"}, titles(Apply(list, Filter{}, SortCreatedAt)))
}

func TestSortTieBreaksByID(t *testing.T) {
	list := build(fixture{title: "x"}, fixture{title: "y"})
	list[0].CreatedAt = base
	list[1].CreatedAt = base
	list[0].ID = uuid.MustParse("ffffffff-0000-4000-8000-000000000000")
	list[1].ID = uuid.MustParse("00000000-0000-4000-8000-000000000000")

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"y", "x"}, titles(Apply(list, Filter{}, SortPriority)))
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	list := build(fixture{title: "b", priority: tasks.PriorityLow}, fixture{title: "a", priority: tasks.PriorityHigh})
	before := append([]tasks.Task(nil), list...)

	got := Apply(list, Filter{}, SortPriority)
	require.Len(t, got, 2)
	assert.Equal(t, before, list)
	assert.Same(t, &list[1], got[0])
}

func TestParsers(t *testing.T) {
	s, err := ParseStatus("done")
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, s)
	_, err = ParseStatus("maybe")
	assert.Error(t, err)

	k, err := ParseSortKey("Priority")
	require.NoError(t, err)
	assert.Equal(t, SortPriority, k)
	_, err = ParseSortKey("title")
	assert.Error(t, err)

	d, err := ParseDueBucket("within:14")
	require.NoError(t, err)
	assert.Equal(t, DueFilter{Bucket: DueWithin, Days: 14}, d)
	d, err = ParseDueBucket("week")
	require.NoError(t, err)
	assert.Equal(t, 7, d.Days)
	_, err = ParseDueBucket("within:x")
	assert.Error(t, err)

	for _, bad := range []string{"within:5days", "within:-1", "within:", "within:2w"} {
		_, err = ParseDueBucket(bad)
		assert.Error(t, err, bad)
	}
}
