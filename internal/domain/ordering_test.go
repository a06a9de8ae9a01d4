package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(day int) time.Time {
	return time.Date(2026, 5, day, 12, 0, 0, 0, time.UTC)
}

func tsPtr(day int) *time.Time {
	t := ts(day)
	return &t
}

func TestDisplayOrder_DoneFirstByCompletion(t *testing.T) {
	tasks := []Task{
		{ID: "open", Status: TaskTodo, Priority: "1", CreatedAt: ts(1)},
		{ID: "done-late", Status: TaskDone, CompletedAt: tsPtr(9), CreatedAt: ts(1)},
		{ID: "done-early", Status: TaskDone, CompletedAt: tsPtr(2), CreatedAt: ts(1)},
	}

	DisplayOrder(tasks)

	assert.Equal(t, "done-early", tasks[0].ID)
	assert.Equal(t, "done-late", tasks[1].ID)
	assert.Equal(t, "open", tasks[2].ID)
}

func TestDisplayOrder_OpenByUrgencyThenCreated(t *testing.T) {
	tasks := []Task{
		{ID: "low", Status: TaskTodo, Priority: "low", CreatedAt: ts(1)},
		{ID: "medium", Status: TaskTodo, Priority: "3", CreatedAt: ts(1)},
		{ID: "high-new", Status: TaskTodo, Priority: "high", CreatedAt: ts(5)},
		{ID: "high-old", Status: TaskTodo, Priority: "2", CreatedAt: ts(2)},
		{ID: "urgent", Status: TaskTodo, Priority: "1", CreatedAt: ts(8)},
	}

	DisplayOrder(tasks)

	got := make([]string, len(tasks))
	for i, task := range tasks {
		got[i] = task.ID
	}
	assert.Equal(t, []string{"urgent", "high-old", "high-new", "medium", "low"}, got)
}
