package quotes

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

func TestEncodeQuoteID(t *testing.T) {
	date := time.Date(2026, time.March, 7, 14, 30, 0, 0, time.UTC)

	id, err := EncodeQuoteID("Rahul", date, 1)
	require.NoError(t, err)
	require.Equal(t, "ORG/2026/03/07/RAHUL/001", id)

	// Serials beyond three digits widen instead of wrapping.
	id, err = EncodeQuoteID("rahul", date, 1024)
	require.NoError(t, err)
	require.Equal(t, "ORG/2026/03/07/RAHUL/1024", id)
}

func TestEncodeQuoteIDRejectsBadInput(t *testing.T) {
	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	_, err := EncodeQuoteID("", date, 1)
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = EncodeQuoteID("R2D2", date, 1)
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = EncodeQuoteID("Rahul", date, 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestParseQuoteIDRoundTrip(t *testing.T) {
	date := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, serial := range []int{1, 42, 999, 1000, 123456} {
		id, err := EncodeQuoteID("Meera", date, serial)
		require.NoError(t, err)

		parts, err := ParseQuoteID(id)
		require.NoError(t, err)
		require.Equal(t, "MEERA", parts.Name)
		require.True(t, parts.Date.Equal(date))
		require.Equal(t, serial, parts.Serial)
	}
}

func TestParseQuoteIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"ORG/2026/03/07/RAHUL",
		"ORG/2026/3/7/RAHUL/001",
		"ORG/2026/03/07/rahul/001",
		"ORG/2026/03/07/RAHUL/01",
		"XYZ/2026/03/07/RAHUL/001",
		"ORG/2026/13/07/RAHUL/001",
		"ORG/2026/02/30/RAHUL/001",
	} {
		_, err := ParseQuoteID(id)
		require.ErrorIs(t, err, shared.ErrValidation, "id %q", id)
	}
}

func TestQuoteIDRegexMatchesEncodedForm(t *testing.T) {
	pattern := regexp.MustCompile(QuoteIDRegex)
	date := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	id, err := EncodeQuoteID("Asha", date, 7)
	require.NoError(t, err)
	require.True(t, pattern.MatchString(id))
}

func TestQuoteIDPrefix(t *testing.T) {
	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "ORG/2026/03/07/RAHUL/", quoteIDPrefix("rahul", date))
}
