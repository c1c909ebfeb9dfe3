package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("ReadingThenInserting", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := New(buf)

		tr.Reading("Reading people.csv")
		tr.Inserting(3)
		tr.Inc()
		tr.Inc()
		tr.Inc()
		tr.Finish()

		assert.Contains(t, buf.String(), "Reading people.csv")
		assert.Contains(t, buf.String(), "Inserting rows")
		assert.Nil(t, tr.bar)
	})

	t.Run("FailedRowsAdvanceTheBar", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := New(buf)

		tr.Inserting(3)
		tr.Inc()
		tr.Fail()
		tr.Inc()

		assert.Equal(t, 3, tr.rows)
		assert.Equal(t, 1, tr.failed)
		assert.Equal(t, int64(3), tr.bar.State().CurrentNum)
		tr.Finish()

		assert.Contains(t, buf.String(), "Inserting rows (1 failed)")
	})

	t.Run("NoRows", func(t *testing.T) {
		buf := &bytes.Buffer{}
		tr := New(buf)

		tr.Reading("Reading empty.csv")
		tr.Inserting(0)
		tr.Inc()
		tr.Finish()
		tr.Finish()

		assert.NotContains(t, buf.String(), "Inserting rows")
	})
}
