package mainwindow

import (
	"testing"

	"autoclicker/internal/core/model"
	"autoclicker/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	assert.Equal(t, 15, parseCount(" 15 "))
	assert.Equal(t, 0, parseCount(""))
	assert.Equal(t, 0, parseCount("-3"))
	assert.Equal(t, 0, parseCount("abc"))
}

func TestParseDurationDefaultsWhenCleared(t *testing.T) {
	assert.Equal(t, 90, parseDuration("90"))
	assert.Equal(t, model.DefaultRepeatDurationSeconds, parseDuration(""))
	assert.Equal(t, model.DefaultRepeatDurationSeconds, parseDuration("0"))
	assert.Equal(t, model.DefaultRepeatDurationSeconds, parseDuration("soon"))
}

func TestParseCoordinate(t *testing.T) {
	assert.Equal(t, -200, parseCoordinate("-200", 5))
	assert.Equal(t, 5, parseCoordinate("x", 5))
}

func TestOptionLabelsFollowLanguage(t *testing.T) {
	translator, err := i18n.New(model.LanguageEnglish)
	require.NoError(t, err)

	english := optionLabels(translator, buttonOptions)
	assert.Len(t, english, 3)

	translator.SetLanguage(model.LanguageRussian)
	russian := optionLabels(translator, buttonOptions)
	assert.NotEqual(t, english, russian)
}

func TestOptionIndex(t *testing.T) {
	assert.Equal(t, 2, optionIndex(buttonOptions, model.ButtonMiddle))
	assert.Equal(t, 1, optionIndex(clickOptions, model.ClickDouble))
	assert.Equal(t, 0, optionIndex(repeatOptions, model.RepeatOption("bogus")))
	assert.Equal(t, 1, labelIndex([]string{"a", "b"}, "b"))
	assert.Equal(t, -1, labelIndex([]string{"a", "b"}, "c"))
}

func TestValidateCount(t *testing.T) {
	assert.NoError(t, validateCount(""))
	assert.NoError(t, validateCount("00"))
	assert.ErrorIs(t, validateCount("-1"), errNotCount)
	assert.ErrorIs(t, validateCount("1.5"), errNotCount)
}
