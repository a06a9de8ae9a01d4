package cli

import (
	"testing"

	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkEdit_KeepEverythingYieldsEmptyPatch(t *testing.T) {
	e := newBulkEdit([]string{"a"}, nil)
	assert.True(t, e.empty())
	assert.Equal(t, domain.TaskPatch{}, e.patch())
}

func TestBulkEdit_StatusAndPriorityPatch(t *testing.T) {
	e := newBulkEdit([]string{"a", "b"}, nil)
	e.status = string(domain.TaskDone)
	e.priority = "1"

	p := e.patch()
	require.NotNil(t, p.Status)
	assert.Equal(t, domain.TaskDone, *p.Status)
	require.NotNil(t, p.Priority)
	assert.Equal(t, "1", *p.Priority)
	assert.False(t, e.empty())
}

func TestBulkEdit_PriorityOnly(t *testing.T) {
	e := newBulkEdit([]string{"a"}, nil)
	e.priority = "low"

	p := e.patch()
	assert.Nil(t, p.Status)
	require.NotNil(t, p.Priority)
	assert.Equal(t, "low", *p.Priority)
}

func TestBulkEdit_AssigneeChoices(t *testing.T) {
	cols := []domain.Colleague{{ID: "ana", Name: "Ana"}}

	e := newBulkEdit([]string{"a"}, cols)
	e.assignee = "ana"
	p := e.patch()
	require.NotNil(t, p.AssigneeIDs)
	assert.Equal(t, []string{"ana"}, *p.AssigneeIDs)

	e = newBulkEdit([]string{"a"}, cols)
	e.assignee = clearValue
	p = e.patch()
	require.NotNil(t, p.AssigneeIDs)
	assert.Empty(t, *p.AssigneeIDs)
	assert.False(t, e.empty())
}
