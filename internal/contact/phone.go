package contact

// phoneDigits is the fixed length of a stored phone number.
const phoneDigits = 10

// NormalizePhone keeps the ASCII digits of raw in order and returns the last
// ten of them. Fewer than ten digits yields "". A leading country code such
// as "1" falls off the front.
func NormalizePhone(raw string) string {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < phoneDigits {
		return ""
	}
	return string(digits[len(digits)-phoneDigits:])
}
