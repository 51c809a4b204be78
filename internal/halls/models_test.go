package halls

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// "rows" is reserved in Postgres; the dimension column must not use it
func TestHallColumnNamesAvoidReservedWords(t *testing.T) {
	s, err := schema.Parse(&Hall{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "total_rows", s.FieldsByName["Rows"].DBName)
	assert.Equal(t, "columns", s.FieldsByName["Columns"].DBName)
}
