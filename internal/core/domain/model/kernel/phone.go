package kernel

import (
	"regexp"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

var (
	e164Pattern = regexp.MustCompile(`^\+\d{7,15}$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// Phone is a phone number normalized to E.164 form ("+" followed by 7 to 15
// digits). The zero value means "no phone".
type Phone struct {
	value string
}

// NormalizePhone strips punctuation and whitespace from raw and returns the
// E.164 form. Numbers written with a leading "+" keep their country code as
// given; bare digit strings of acceptable length get a "+" prefix.
func NormalizePhone(raw string) (Phone, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Phone{}, false
	}

	digits := nonDigits.ReplaceAllString(s, "")
	if strings.HasPrefix(s, "+") {
		candidate := "+" + digits
		if !e164Pattern.MatchString(candidate) {
			return Phone{}, false
		}
		return Phone{value: candidate}, true
	}

	if len(digits) < 7 || len(digits) > 15 {
		return Phone{}, false
	}
	return Phone{value: "+" + digits}, true
}

// NewPhone is NormalizePhone with an error for values that do not normalize.
func NewPhone(raw string) (Phone, error) {
	p, ok := NormalizePhone(raw)
	if !ok {
		return Phone{}, errs.NewValueIsInvalidError("phone")
	}
	return p, nil
}

func (p Phone) String() string {
	return p.value
}

func (p Phone) IsZero() bool {
	return p.value == ""
}
