package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurancms/recitation-api/internal/models"
)

func TestFilename(t *testing.T) {
	withReciter := &models.Asset{ID: 42, Reciter: &models.Reciter{Slug: "husary"}}
	assert.Equal(t, "asset_42_husary_recitations.json", Filename(withReciter))

	without := &models.Asset{ID: 7}
	assert.Equal(t, "asset_7_recitations.json", Filename(without))
}

func TestBuildEntries_Ordering(t *testing.T) {
	rows := []models.RecitationSurahTrack{
		{
			ID: 2, SurahNumber: 114, AudioFile: "uploads/assets/42/recitations/114.mp3",
			Timings: []models.RecitationAyahTiming{
				{AyahKey: "114:2", StartMS: 3000, EndMS: 6000, DurationMS: 3000},
				{AyahKey: "114:1", StartMS: 0, EndMS: 3000, DurationMS: 3000},
			},
		},
		{
			ID: 1, SurahNumber: 2, AudioFile: "uploads/assets/42/recitations/002.mp3",
			Timings: []models.RecitationAyahTiming{
				{AyahKey: "2:10", StartMS: 100, EndMS: 200, DurationMS: 100},
				{AyahKey: "2:9", StartMS: 50, EndMS: 100, DurationMS: 50},
				{AyahKey: "2:100", StartMS: 900, EndMS: 1000, DurationMS: 100},
			},
		},
	}

	entries, err := BuildEntries(rows, "https://cdn.example.com")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 2, entries[0].SurahNumber)
	assert.Equal(t, 114, entries[1].SurahNumber)

	var keys []string
	for _, timing := range entries[0].AyahsTimings {
		keys = append(keys, timing.AyahKey)
	}
	assert.Equal(t, []string{"2:9", "2:10", "2:100"}, keys)
	assert.Equal(t, "114:1", entries[1].AyahsTimings[0].AyahKey)

	assert.Equal(t, "https://cdn.example.com/media/uploads/assets/42/recitations/002.mp3", entries[0].AudioURL)
	assert.Equal(t, "Al-Baqarah", entries[0].SurahNameEn)
	assert.Equal(t, 286, entries[0].AyahsCount)
	assert.Equal(t, "madinah", entries[0].RevelationPlace)

	// input is not reordered in place
	assert.Equal(t, 114, rows[0].SurahNumber)
}

func TestSortTimings_UnparsableKeysLast(t *testing.T) {
	timings := []Timing{{AyahKey: "bogus"}, {AyahKey: "1:2"}, {AyahKey: "1:1"}}
	sortTimings(timings)
	assert.Equal(t, "1:1", timings[0].AyahKey)
	assert.Equal(t, "1:2", timings[1].AyahKey)
	assert.Equal(t, "bogus", timings[2].AyahKey)
}

func TestEncode(t *testing.T) {
	entries, err := BuildEntries([]models.RecitationSurahTrack{
		{SurahNumber: 1, AudioFile: "uploads/assets/1/recitations/001.mp3", DurationMS: 1234, SizeBytes: 99},
	}, "https://cdn.example.com/a&b")
	require.NoError(t, err)

	out, err := Encode(entries)
	require.NoError(t, err)
	text := string(out)

	t.Run("keeps Arabic text unescaped", func(t *testing.T) {
		assert.Contains(t, text, `"surah_name": "الفاتحة"`)
		assert.NotContains(t, text, `\u`)
	})

	t.Run("keeps HTML characters unescaped", func(t *testing.T) {
		assert.Contains(t, text, "a&b")
	})

	t.Run("indents by two spaces without trailing newline", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"surah_number\": 1,"))
		assert.False(t, strings.HasSuffix(text, "\n"))
	})

	t.Run("field order", func(t *testing.T) {
		order := []string{
			"surah_number", "surah_name", "surah_name_en", "audio_url", "duration_ms",
			"size_bytes", "revelation_order", "revelation_place", "ayahs_count", "ayahs_timings",
		}
		last := -1
		for _, field := range order {
			idx := strings.Index(text, `"`+field+`"`)
			require.GreaterOrEqual(t, idx, 0, field)
			assert.Greater(t, idx, last, field)
			last = idx
		}
	})

	t.Run("empty timings encode as an empty array", func(t *testing.T) {
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, []any{}, decoded[0]["ayahs_timings"])
	})

	t.Run("no tracks encode as an empty array", func(t *testing.T) {
		empty, err := Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(empty))
	})
}
