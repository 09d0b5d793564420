package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// numericDate matches text written as digits and separators, e.g. "2024-02-30" or "03/07/2024".
// Such text is only accepted in API format.
var numericDate = regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}$`)

var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}

// ParseNatural accepts API formatted text or English phrases such as "tomorrow" or
// "next friday", resolved relative to base. The phrase must make up the whole text.
func ParseNatural(text string, base time.Time) (civil.Date, error) {
	if d, err := ParseDay(text); err == nil {
		return d, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return civil.Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if numericDate.MatchString(text) {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	r, err := naturalParser.Parse(text, base)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, text, err)
	}
	if r == nil || r.Index != 0 || !strings.EqualFold(strings.TrimSpace(r.Text), text) {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	return civil.DateOf(r.Time.In(base.Location())), nil
}
