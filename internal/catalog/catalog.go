// Package catalog holds the fixed metadata of the 114 surahs.
package catalog

import "fmt"

// RevelationPlace is where a surah was revealed
type RevelationPlace string

const (
	Makkah  RevelationPlace = "makkah"
	Madinah RevelationPlace = "madinah"
)

// Surah is the static description of one chapter
type Surah struct {
	Number          int
	NameAr          string
	NameEn          string
	AyahCount       int
	RevelationPlace RevelationPlace
	RevelationOrder int
}

// Count is the number of surahs
const Count = len(surahs)

// Lookup returns the surah with the given number
func Lookup(number int) (Surah, error) {
	if number < 1 || number > Count {
		return Surah{}, fmt.Errorf("surah %d out of range 1-%d", number, Count)
	}
	return surahs[number-1], nil
}

// MustLookup is Lookup for numbers already validated by the caller
func MustLookup(number int) Surah {
	s, err := Lookup(number)
	if err != nil {
		panic(err)
	}
	return s
}
