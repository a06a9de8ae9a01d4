package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/mstolbov/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTaskTable_ShowsTitlesAndProjects(t *testing.T) {
	p := testutil.NewProject("p1", "Relaunch", "Acme", domain.ProjectActive)
	tasks := []domain.Task{
		testutil.NewTask("Write copy", testutil.WithProject("p1")),
		testutil.NewTask("Ship it", testutil.WithStatus(domain.TaskDone)),
	}

	out := TaskTable(tasks, []domain.Project{p}, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "Write copy")
	assert.Contains(t, out, "Relaunch")
	assert.Contains(t, out, "Ship it")
	assert.Contains(t, out, "TITLE")
}

func TestTaskTable_DueColumn(t *testing.T) {
	due := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{testutil.NewTask("t", testutil.WithDue(due))}

	out := TaskTable(tasks, nil, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "2026-08-25")
}

func TestWorkloadTable_CountsOpenTasksOnly(t *testing.T) {
	cols := []domain.Colleague{testutil.NewColleague("ana", "Ana", testutil.WithPosition("designer"))}
	tasks := []domain.Task{
		testutil.NewTask("open", testutil.WithAssignees("ana")),
		testutil.NewTask("closed", testutil.WithAssignees("ana"), testutil.WithStatus(domain.TaskDone)),
	}

	out := WorkloadTable(cols, tasks)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Ana")
	assert.Contains(t, lines[1], "1")
}