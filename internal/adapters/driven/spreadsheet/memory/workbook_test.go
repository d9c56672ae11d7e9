package memory

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbook_Rows(t *testing.T) {
	wb := NewWorkbook(
		Sheet{Name: "B", Rows: [][]string{{"1"}, {"2"}, {"3"}}},
		Sheet{Name: "A", Rows: nil},
	)

	assert.Equal(t, []string{"B", "A"}, wb.SheetNames())

	rows, err := wb.Rows("B", 2)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, rows)

	rows, err = wb.Rows("B", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows[0][0] = "changed"
	again, _ := wb.Rows("B", 1)
	assert.Equal(t, "1", again[0][0], "returned rows must be copies")

	_, err = wb.Rows("missing", 0)
	assert.Error(t, err)
}

func TestWorkbook_BreakSheet(t *testing.T) {
	wb := NewWorkbook(Sheet{Name: "S", Rows: [][]string{{"x"}}})
	boom := errors.New("boom")
	wb.BreakSheet("S", boom)

	_, err := wb.Rows("S", 0)
	assert.ErrorIs(t, err, boom)
}

func TestOpener(t *testing.T) {
	o := NewOpener()
	wb := NewWorkbook()
	o.Add("a.xlsx", wb)
	o.Fail("bad.xlsx", errors.New("corrupt"))

	got, err := o.Open("a.xlsx")
	require.NoError(t, err)
	require.NoError(t, got.Close())
	assert.Equal(t, 1, wb.Closes())

	_, err = o.Open("bad.xlsx")
	assert.EqualError(t, err, "corrupt")

	_, err = o.Open("none.xlsx")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
