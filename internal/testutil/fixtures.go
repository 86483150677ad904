package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/jacobusmeintjes/todo/internal/tasks"
)

// SampleTasks returns three valid tasks created before now: an overdue
// high-priority task, an undated completed task and a low-priority task due
// in three days.
func SampleTasks(now time.Time) []tasks.Task {
	today := tasks.DateOf(now)
	overdue := today.AddDays(-2)
	soon := today.AddDays(3)
	completedAt := now.Add(-time.Hour).UTC()

	return []tasks.Task{
		{
			ID:        uuid.MustParse("11111111-aaaa-4aaa-8aaa-000000000001"),
			Title:     "File taxes",
			CreatedAt: now.Add(-72 * time.Hour).UTC(),
			DueDate:   &overdue,
			Priority:  tasks.PriorityHigh,
			Tags:      []string{"finance"},
		},
		{
			ID:          uuid.MustParse("22222222-bbbb-4bbb-8bbb-000000000002"),
			Title:       "Buy milk",
			Description: "Oat, not dairy",
			CreatedAt:   now.Add(-48 * time.Hour).UTC(),
			Completed:   true,
			CompletedAt: &completedAt,
			Priority:    tasks.PriorityMedium,
			Tags:        []string{"home", "shopping"},
		},
		{
			ID:        uuid.MustParse("33333333-cccc-4ccc-8ccc-000000000003"),
			Title:     "Plan trip",
			CreatedAt: now.Add(-24 * time.Hour).UTC(),
			DueDate:   &soon,
			Priority:  tasks.PriorityLow,
		},
	}
}

// WriteTasks encodes list into path in the test environment.
func (e *TestEnv) WriteTasks(path string, list []tasks.Task) {
	e.t.Helper()

	data, err := tasks.Encode(list)
	if err != nil {
		e.t.Fatalf("Failed to encode tasks: %v", err)
	}
	e.CreateFile(path, string(data))
}

// ReadTasks decodes the task file at path.
func (e *TestEnv) ReadTasks(path string) []tasks.Task {
	e.t.Helper()

	list, err := tasks.Decode([]byte(e.ReadFile(path)))
	if err != nil {
		e.t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return list
}
