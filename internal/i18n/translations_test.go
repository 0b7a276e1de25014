package i18n

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Writing", T("en", "nav.writing"))
	assert.Equal(t, "ライティング", T("ja", "nav.writing"))
	assert.Equal(t, "Writing", T("fr", "nav.writing"))
	assert.Equal(t, "nav.unknown", T("ja", "nav.unknown"))
}

func TestTranslationsComplete(t *testing.T) {
	for code, table := range translations {
		for key := range translations[DefaultCode] {
			_, ok := table[key]
			assert.True(t, ok, code+" "+key)
		}
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "June 1, 2024", FormatDate("2024-06-01", "en"))
	assert.Equal(t, "June 1, 2024", FormatDate("2024-06-01T10:00:00Z", "fr"))
	assert.Equal(t, "2024年6月1日", FormatDate("2024-06-01T10:00:00Z", "ja"))
	assert.Equal(t, "2024年6月1日", FormatDate("2024-06-01 10:00:00", "zht"))
	assert.Equal(t, "someday", FormatDate("someday", "en"))
}
