package kernel

import "regexp"

var (
	spokenPhonePattern = regexp.MustCompile(`\+?\d[\d\-\s()]{9,}\d`)
	orderNumberInText  = regexp.MustCompile(`\b\d{4}\b`)
)

// Contact is what could be picked out of a free-text utterance.
type Contact struct {
	Phone       Phone
	OrderNumber string
}

// ExtractContact finds the first phone-like run and the first standalone
// 4-digit group in text. Digits that belong to the phone match are not
// considered as an order number.
func ExtractContact(text string) Contact {
	var c Contact

	phoneSpan := spokenPhonePattern.FindStringIndex(text)
	if phoneSpan != nil {
		if p, ok := NormalizePhone(text[phoneSpan[0]:phoneSpan[1]]); ok {
			c.Phone = p
		}
	}

	for _, span := range orderNumberInText.FindAllStringIndex(text, -1) {
		if phoneSpan != nil && span[0] < phoneSpan[1] && span[1] > phoneSpan[0] {
			continue
		}
		c.OrderNumber = text[span[0]:span[1]]
		break
	}

	return c
}
