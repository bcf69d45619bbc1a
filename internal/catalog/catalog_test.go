package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		number    int
		wantEn    string
		wantAr    string
		wantAyahs int
		wantPlace RevelationPlace
		wantOrder int
		wantErr   bool
	}{
		{number: 1, wantEn: "Al-Fatihah", wantAr: "الفاتحة", wantAyahs: 7, wantPlace: Makkah, wantOrder: 5},
		{number: 2, wantEn: "Al-Baqarah", wantAr: "البقرة", wantAyahs: 286, wantPlace: Madinah, wantOrder: 87},
		{number: 38, wantEn: "Saad", wantAr: "ص", wantAyahs: 88, wantPlace: Makkah, wantOrder: 38},
		{number: 96, wantEn: "Al-Alaq", wantAr: "العلق", wantAyahs: 19, wantPlace: Makkah, wantOrder: 1},
		{number: 114, wantEn: "An-Naas", wantAr: "الناس", wantAyahs: 6, wantPlace: Makkah, wantOrder: 21},
		{number: 0, wantErr: true},
		{number: 115, wantErr: true},
	}

	for _, tt := range tests {
		s, err := Lookup(tt.number)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.number, s.Number)
		assert.Equal(t, tt.wantEn, s.NameEn)
		assert.Equal(t, tt.wantAr, s.NameAr)
		assert.Equal(t, tt.wantAyahs, s.AyahCount)
		assert.Equal(t, tt.wantPlace, s.RevelationPlace)
		assert.Equal(t, tt.wantOrder, s.RevelationOrder)
	}
}

func TestTableConsistency(t *testing.T) {
	assert.Equal(t, 114, Count)

	totalAyahs := 0
	orders := make(map[int]bool)
	for i, s := range surahs {
		assert.Equal(t, i+1, s.Number)
		assert.NotEmpty(t, s.NameAr)
		assert.NotEmpty(t, s.NameEn)
		totalAyahs += s.AyahCount
		orders[s.RevelationOrder] = true
	}

	assert.Equal(t, 6236, totalAyahs)
	for order := 1; order <= 114; order++ {
		assert.True(t, orders[order], "revelation order %d missing", order)
	}
}

func TestMustLookupPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { MustLookup(200) })
	assert.NotPanics(t, func() { MustLookup(7) })
}
