package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/qurancms/recitation-api/internal/catalog"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/internal/objectstore"
)

// Entry is one surah of the manifest. Field order is part of the format.
type Entry struct {
	SurahNumber     int      `json:"surah_number"`
	SurahName       string   `json:"surah_name"`
	SurahNameEn     string   `json:"surah_name_en"`
	AudioURL        string   `json:"audio_url"`
	DurationMS      int64    `json:"duration_ms"`
	SizeBytes       int64    `json:"size_bytes"`
	RevelationOrder int      `json:"revelation_order"`
	RevelationPlace string   `json:"revelation_place"`
	AyahsCount      int      `json:"ayahs_count"`
	AyahsTimings    []Timing `json:"ayahs_timings"`
}

// Timing is one ayah offset inside an entry
type Timing struct {
	AyahKey    string `json:"ayah_key"`
	StartMS    int64  `json:"start_ms"`
	EndMS      int64  `json:"end_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// Filename names the manifest object of an asset
func Filename(asset *models.Asset) string {
	if slug := asset.ReciterSlug(); slug != "" {
		return fmt.Sprintf("asset_%d_%s_recitations.json", asset.ID, slug)
	}
	return fmt.Sprintf("asset_%d_recitations.json", asset.ID)
}

// BuildEntries converts finalized tracks into manifest entries ordered by surah,
// with timings ordered numerically by (surah, ayah)
func BuildEntries(trackRows []models.RecitationSurahTrack, publicBaseURL string) ([]Entry, error) {
	rows := make([]models.RecitationSurahTrack, len(trackRows))
	copy(rows, trackRows)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SurahNumber < rows[j].SurahNumber })

	entries := make([]Entry, 0, len(rows))
	for _, t := range rows {
		surah, err := catalog.Lookup(t.SurahNumber)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", t.ID, err)
		}

		timings := make([]Timing, 0, len(t.Timings))
		for _, at := range t.Timings {
			timings = append(timings, Timing{
				AyahKey:    at.AyahKey,
				StartMS:    at.StartMS,
				EndMS:      at.EndMS,
				DurationMS: at.DurationMS,
			})
		}
		sortTimings(timings)

		entries = append(entries, Entry{
			SurahNumber:     t.SurahNumber,
			SurahName:       surah.NameAr,
			SurahNameEn:     surah.NameEn,
			AudioURL:        objectstore.PublicURL(publicBaseURL, objectstore.DBKey(t.AudioFile)),
			DurationMS:      t.DurationMS,
			SizeBytes:       t.SizeBytes,
			RevelationOrder: surah.RevelationOrder,
			RevelationPlace: string(surah.RevelationPlace),
			AyahsCount:      surah.AyahCount,
			AyahsTimings:    timings,
		})
	}
	return entries, nil
}

// sortTimings orders keys numerically so "2:10" follows "2:9".
// Keys that do not parse sort after valid ones, by string.
func sortTimings(timings []Timing) {
	type sortKey struct {
		surah, ayah int
		ok          bool
	}
	keys := make(map[string]sortKey, len(timings))
	for _, t := range timings {
		s, a, err := models.ParseAyahKey(t.AyahKey)
		keys[t.AyahKey] = sortKey{surah: s, ayah: a, ok: err == nil}
	}

	sort.SliceStable(timings, func(i, j int) bool {
		ki, kj := keys[timings[i].AyahKey], keys[timings[j].AyahKey]
		if ki.ok != kj.ok {
			return ki.ok
		}
		if !ki.ok {
			return timings[i].AyahKey < timings[j].AyahKey
		}
		if ki.surah != kj.surah {
			return ki.surah < kj.surah
		}
		return ki.ayah < kj.ayah
	})
}

// Encode writes entries as UTF-8 JSON with a 2-space indent and no escaping
// of non-ASCII or HTML characters
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
