package models

// All returns every model managed by migrations, in dependency order
func All() []any {
	return []any{
		&Reciter{},
		&Asset{},
		&AssetVersion{},
		&RecitationSurahTrack{},
		&RecitationAyahTiming{},
	}
}
