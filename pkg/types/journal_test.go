package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretacare/aretacare/pkg/types"
)

func TestEntryTypeValid(t *testing.T) {
	valid := []types.EntryType{
		types.ENTRY_TYPE_MEDICAL_UPDATE,
		types.ENTRY_TYPE_TREATMENT_CHANGE,
		types.ENTRY_TYPE_APPOINTMENT,
		types.ENTRY_TYPE_QUESTION,
		types.ENTRY_TYPE_INSIGHT,
		types.ENTRY_TYPE_MILESTONE,
	}
	for _, v := range valid {
		assert.True(t, v.Valid(), v.String())
	}

	assert.False(t, types.EntryType("").Valid())
	assert.False(t, types.EntryType("DIAGNOSIS").Valid())
	assert.False(t, types.EntryType("medical_update").Valid())
}

func TestParseEntryType(t *testing.T) {
	testCases := []struct {
		name   string
		raw    string
		expect types.EntryType
	}{
		{
			name:   "exact match",
			raw:    "MEDICAL_UPDATE",
			expect: types.ENTRY_TYPE_MEDICAL_UPDATE,
		},
		{
			name:   "lowercase coerced",
			raw:    "milestone",
			expect: types.ENTRY_TYPE_MILESTONE,
		},
		{
			name:   "surrounding whitespace",
			raw:    "  APPOINTMENT ",
			expect: types.ENTRY_TYPE_APPOINTMENT,
		},
		{
			name:   "unknown value falls back",
			raw:    "SOMETHING_ELSE",
			expect: types.ENTRY_TYPE_INSIGHT,
		},
		{
			name:   "empty falls back",
			raw:    "",
			expect: types.ENTRY_TYPE_INSIGHT,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, types.ParseEntryType(tc.raw))
		})
	}
}
