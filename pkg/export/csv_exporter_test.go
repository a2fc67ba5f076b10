package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsHeaderWidth(t *testing.T) {
	data := Dataset{
		Headers: []string{"ID", "Title", "Price"},
		Rows: []map[string]string{
			{"ID": "1", "Title": "The Quantum Realm", "Price": "25.99"},
			{"ID": "2", "Title": "Classic Fairy Tales"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	assert.Equal(t, "ID,Title,Price\n1,The Quantum Realm,25.99\n2,Classic Fairy Tales,\n", string(out))
}

func TestCSVRenderRejectsEmptyHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
