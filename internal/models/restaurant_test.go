package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestPricingSetting_InactiveIsWritten(t *testing.T) {
	s, err := schema.Parse(&PricingSetting{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("IsActive")
	require.NotNil(t, field)
	assert.False(t, field.HasDefaultValue, "a column default would replace false on insert")
}
