package workflow

import (
	"testing"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPtr(s models.TaskStatus) *models.TaskStatus {
	return &s
}

func TestTaskFilter_Resolve_Defaults(t *testing.T) {
	viewer := uuid.New()

	c, err := TaskFilter{}.Resolve(viewer)

	require.NoError(t, err)
	assert.Equal(t, OrderCreatedAt, c.OrderBy)
	assert.True(t, c.Desc)
	assert.Equal(t, "DESC", c.Direction())
	assert.Empty(t, c.Statuses)
	assert.False(t, c.OwnerOnly)
	assert.False(t, c.OwnerOrReviewer)
}

func TestTaskFilter_Resolve_TodoGroupsReviewFailed(t *testing.T) {
	c, err := TaskFilter{Status: statusPtr(models.TaskTodo)}.Resolve(uuid.New())

	require.NoError(t, err)
	assert.ElementsMatch(t, []models.TaskStatus{models.TaskTodo, models.TaskReviewFailed}, c.Statuses)
}

func TestTaskFilter_Resolve_MineScopes(t *testing.T) {
	viewer := uuid.New()

	todo, err := TaskFilter{Status: statusPtr(models.TaskTodo), Scope: ScopeMine}.Resolve(viewer)
	require.NoError(t, err)
	assert.True(t, todo.OwnerOnly)
	assert.False(t, todo.OwnerOrReviewer)

	done, err := TaskFilter{Status: statusPtr(models.TaskDone), Scope: ScopeMine}.Resolve(viewer)
	require.NoError(t, err)
	assert.False(t, done.OwnerOnly)
	assert.True(t, done.OwnerOrReviewer)

	unset, err := TaskFilter{Scope: ScopeMine}.Resolve(viewer)
	require.NoError(t, err)
	assert.True(t, unset.OwnerOrReviewer)
}

func TestTaskFilter_Resolve_Ordering(t *testing.T) {
	c, err := TaskFilter{OrderBy: OrderPriority, OrderDir: "asc"}.Resolve(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, OrderPriority, c.OrderBy)
	assert.Equal(t, "ASC", c.Direction())

	c, err = TaskFilter{OrderBy: "createdAt"}.Resolve(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, OrderCreatedAt, c.OrderBy)
}

func TestTaskFilter_Resolve_Invalid(t *testing.T) {
	_, err := TaskFilter{OrderBy: "title; DROP TABLE tasks"}.Resolve(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidOrderField)

	_, err = TaskFilter{OrderDir: "sideways"}.Resolve(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidOrderDir)

	_, err = TaskFilter{Scope: Scope(7)}.Resolve(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = TaskFilter{Status: statusPtr(models.TaskBan)}.Resolve(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCriteria_Matches(t *testing.T) {
	owner := uuid.New()
	reviewer := uuid.New()
	outsider := uuid.New()

	task := func(status models.TaskStatus) *models.Task {
		return &models.Task{
			Status:     status,
			OwnerIDs:   models.NewUserSet(owner),
			ReviewerID: &reviewer,
		}
	}

	t.Run("ban always excluded", func(t *testing.T) {
		c, _ := TaskFilter{}.Resolve(owner)
		assert.False(t, c.Matches(task(models.TaskBan)))
		assert.True(t, c.Matches(task(models.TaskDone)))
	})

	t.Run("todo includes review failed", func(t *testing.T) {
		c, _ := TaskFilter{Status: statusPtr(models.TaskTodo)}.Resolve(outsider)
		assert.True(t, c.Matches(task(models.TaskTodo)))
		assert.True(t, c.Matches(task(models.TaskReviewFailed)))
		assert.False(t, c.Matches(task(models.TaskUnderReview)))
	})

	t.Run("mine todo excludes reviewer", func(t *testing.T) {
		c, _ := TaskFilter{Status: statusPtr(models.TaskTodo), Scope: ScopeMine}.Resolve(reviewer)
		assert.False(t, c.Matches(task(models.TaskTodo)))

		c, _ = TaskFilter{Status: statusPtr(models.TaskTodo), Scope: ScopeMine}.Resolve(owner)
		assert.True(t, c.Matches(task(models.TaskTodo)))
	})

	t.Run("mine other status includes reviewer", func(t *testing.T) {
		c, _ := TaskFilter{Status: statusPtr(models.TaskUnderReview), Scope: ScopeMine}.Resolve(reviewer)
		assert.True(t, c.Matches(task(models.TaskUnderReview)))

		c, _ = TaskFilter{Status: statusPtr(models.TaskUnderReview), Scope: ScopeMine}.Resolve(outsider)
		assert.False(t, c.Matches(task(models.TaskUnderReview)))
	})

	t.Run("exact status", func(t *testing.T) {
		c, _ := TaskFilter{Status: statusPtr(models.TaskDone)}.Resolve(outsider)
		assert.True(t, c.Matches(task(models.TaskDone)))
		assert.False(t, c.Matches(task(models.TaskTodo)))
	})

	t.Run("nil task", func(t *testing.T) {
		c, _ := TaskFilter{}.Resolve(owner)
		assert.False(t, c.Matches(nil))
	})
}
