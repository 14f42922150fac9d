package quotes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// Quote identifiers pack organisation, date, requester name and a global
// serial into one sortable string: ORG/YYYY/MM/DD/NAME/NNN. Encoding and
// parsing share these constants; keep them together so the format cannot
// drift between generation and lookup.
const (
	quoteIDOrg         = "ORG"
	quoteIDSeparator   = "/"
	quoteIDSerialWidth = 3
)

// QuoteIDRegex matches well-formed quote identifiers. Serials wider than
// three digits stay matchable; the zero padding only sets the minimum width.
const QuoteIDRegex = `^ORG/\d{4}/\d{2}/\d{2}/[A-Z]+/\d{3,}$`

var (
	quoteIDPattern = regexp.MustCompile(QuoteIDRegex)
	namePattern    = regexp.MustCompile(`^[A-Z]+$`)
)

// QuoteIDParts is the decoded form of a quote identifier.
type QuoteIDParts struct {
	Name   string
	Date   time.Time
	Serial int
}

// EncodeQuoteID builds a quote identifier. The name token is upper-cased and
// must be non-empty letters.
func EncodeQuoteID(name string, date time.Time, serial int) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("%w: quote id name token %q must be letters only", shared.ErrValidation, name)
	}
	if serial < 1 {
		return "", fmt.Errorf("%w: quote id serial must be positive", shared.ErrValidation)
	}
	return fmt.Sprintf("%s%s%04d%s%02d%s%02d%s%s%s%0*d",
		quoteIDOrg, quoteIDSeparator,
		date.Year(), quoteIDSeparator,
		int(date.Month()), quoteIDSeparator,
		date.Day(), quoteIDSeparator,
		name, quoteIDSeparator,
		quoteIDSerialWidth, serial,
	), nil
}

// ParseQuoteID decodes a quote identifier produced by EncodeQuoteID.
func ParseQuoteID(id string) (QuoteIDParts, error) {
	if !quoteIDPattern.MatchString(id) {
		return QuoteIDParts{}, fmt.Errorf("%w: malformed quote id %q", shared.ErrValidation, id)
	}
	fields := strings.Split(id, quoteIDSeparator)
	year, _ := strconv.Atoi(fields[1])
	month, _ := strconv.Atoi(fields[2])
	day, _ := strconv.Atoi(fields[3])
	serial, err := strconv.Atoi(fields[5])
	if err != nil {
		return QuoteIDParts{}, fmt.Errorf("%w: quote id serial %q", shared.ErrValidation, fields[5])
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return QuoteIDParts{}, fmt.Errorf("%w: quote id %q has no such date", shared.ErrValidation, id)
	}
	return QuoteIDParts{Name: fields[4], Date: date, Serial: serial}, nil
}

// quoteIDPrefix is the shared prefix for all serials under one name/date.
func quoteIDPrefix(name string, date time.Time) string {
	return fmt.Sprintf("%s%s%04d%s%02d%s%02d%s%s%s",
		quoteIDOrg, quoteIDSeparator,
		date.Year(), quoteIDSeparator,
		int(date.Month()), quoteIDSeparator,
		date.Day(), quoteIDSeparator,
		strings.ToUpper(strings.TrimSpace(name)), quoteIDSeparator,
	)
}
