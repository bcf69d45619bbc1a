// Package filenames extracts surah numbers from uploaded track filenames.
package filenames

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/qurancms/recitation-api/internal/models"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// tailPattern matches the three digit surah number before the extension.
// Anything in front of it, including an underscore separator, is ignored.
var tailPattern = regexp.MustCompile(`(?i)(\d{3})\.mp3$`)

// ParseSurahNumber returns the surah number encoded in filename.
// Failures are *errors.AppError values with code invalid_filename or
// invalid_surah_number.
func ParseSurahNumber(filename string) (int, error) {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))

	m := tailPattern.FindStringSubmatch(base)
	if m == nil {
		return 0, apperrors.InvalidFilename(filename)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, apperrors.InvalidFilename(filename)
	}
	if n < models.MinSurahNumber || n > models.MaxSurahNumber {
		return 0, apperrors.InvalidSurahNumber(filename, n)
	}
	return n, nil
}

