package styled

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
)

func TestColumnsTable(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	out := ColumnsTable("people", []string{"name", "age"})

	assert.Contains(t, out, "people")
	assert.Contains(t, out, "Column")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "age")
	assert.Equal(t, 2, strings.Count(out, "TEXT"))
}
