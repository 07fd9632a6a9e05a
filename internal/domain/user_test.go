package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateOfBirthLayout, value)
	require.NoError(t, err)
	return parsed
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		today string
		want  int
	}{
		{name: "birthday not yet reached", birth: "2010-06-15", today: "2024-06-14", want: 13},
		{name: "birthday today", birth: "2008-06-15", today: "2024-06-15", want: 16},
		{name: "birthday passed", birth: "2000-01-02", today: "2024-06-15", want: 24},
		{name: "same month earlier day", birth: "2005-06-20", today: "2024-06-15", want: 18},
		{name: "later month", birth: "2005-12-31", today: "2024-06-15", want: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(date(t, tt.birth), date(t, tt.today)))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleProfessor))
	assert.True(t, ValidRole(RoleUniversity))
	assert.False(t, ValidRole("Admin"))
	assert.False(t, ValidRole(""))
}
