package seats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Postgres fully reserves "row", so the grid columns need names its grammar
// accepts in check constraints and ORDER BY.
func TestSeatColumnNamesAvoidReservedWords(t *testing.T) {
	s, err := schema.Parse(&Seat{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "seat_row", s.FieldsByName["Row"].DBName)
	assert.Equal(t, "col", s.FieldsByName["Column"].DBName)
}
