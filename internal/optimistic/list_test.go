package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string
	Name string
}

func newRecordList(seed ...record) *List[record] {
	l := NewList(func(r record) string { return r.ID })
	l.Reset(seed)
	return l
}

func TestTempIDs(t *testing.T) {
	id := NewTempID()
	assert.True(t, IsTempID(id))
	assert.False(t, IsTempID("a1b2c3"))
	assert.NotEqual(t, id, NewTempID())
}

func TestStageCreateRequiresTempID(t *testing.T) {
	l := newRecordList()
	err := l.StageCreate(record{ID: "server-1"})
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestCreateSuccessReplacesPlaceholderAtHead(t *testing.T) {
	l := newRecordList(record{ID: "a"}, record{ID: "b"})

	tempID := NewTempID()
	require.NoError(t, l.StageCreate(record{ID: tempID, Name: "staged"}))
	require.Equal(t, 3, l.Len())
	assert.Equal(t, tempID, l.Items()[0].ID)

	l.CommitCreate(tempID, record{ID: "c", Name: "confirmed"})
	require.Equal(t, 3, l.Len())
	assert.Equal(t, "c", l.Items()[0].ID)
	_, ok := l.Get(tempID)
	assert.False(t, ok, "placeholder should be gone after commit")
}

func TestCreateSuccessNeverDuplicatesServerID(t *testing.T) {
	// A reload can race the commit and already contain the new record.
	l := newRecordList(record{ID: "c"}, record{ID: "a"})

	tempID := NewTempID()
	require.NoError(t, l.StageCreate(record{ID: tempID}))
	l.CommitCreate(tempID, record{ID: "c", Name: "confirmed"})

	require.Equal(t, 2, l.Len())
	assert.Equal(t, "c", l.Items()[0].ID)
	assert.Equal(t, "confirmed", l.Items()[0].Name)
	assert.Equal(t, "a", l.Items()[1].ID)
}

func TestCreateFailureRestoresOrder(t *testing.T) {
	l := newRecordList(record{ID: "a"}, record{ID: "b"})

	tempID := NewTempID()
	require.NoError(t, l.StageCreate(record{ID: tempID}))
	l.RollbackCreate(tempID)

	require.Equal(t, 2, l.Len())
	assert.Equal(t, "a", l.Items()[0].ID)
	assert.Equal(t, "b", l.Items()[1].ID)
}

func TestReplaceInPlace(t *testing.T) {
	l := newRecordList(record{ID: "a", Name: "old"}, record{ID: "b"})

	assert.True(t, l.Replace("a", record{ID: "a", Name: "new"}))
	got, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "a", l.Items()[0].ID, "replace must not reorder")

	assert.False(t, l.Replace("missing", record{ID: "missing"}))
	assert.Equal(t, 2, l.Len())
}

func TestRemove(t *testing.T) {
	l := newRecordList(record{ID: "a"}, record{ID: "b"}, record{ID: "c"})

	assert.True(t, l.Remove("b"))
	assert.Equal(t, 2, l.Len())
	assert.False(t, l.Remove("b"))

	l.Reset([]record{{ID: "x"}})
	assert.Equal(t, 1, l.Len())
}
