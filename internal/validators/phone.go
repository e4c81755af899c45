package validators

import "regexp"

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	phoneRe    = regexp.MustCompile(`^[1-9]\d{1,14}$`)
)

// IsValidPhone aceita telefone com DDD, ignorando máscara ((85) 99945-1711 etc).
func IsValidPhone(phone string) bool {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	return phoneRe.MatchString(digits)
}
