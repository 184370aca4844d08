package phone

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrEmptyPhone номер не передан
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrInvalidFormat номер содержит недопустимые символы
	ErrInvalidFormat = errors.New("phone number can only contain digits and separators")

	// ErrInvalidLength номер не укладывается в длину E.164
	ErrInvalidLength = errors.New("phone number must have between 8 and 15 digits")

	// ErrNoCountryCode номер локальный, а код страны по умолчанию не настроен
	ErrNoCountryCode = errors.New("phone number has no country code")

	// ErrInvalidNumber номер не существует в плане нумерации своей страны
	ErrInvalidNumber = errors.New("phone number is not valid for its country")
)

var digitsRegex = regexp.MustCompile(`^\d+$`)

var separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// E.164: до 15 цифр, включая код страны
const (
	minDigits = 8
	maxDigits = 15
)

// Normalize приводит номер к международному формату E.164 (+27821234567).
// Принимает +27 82 123 4567, 0027821234567 и локальный 082 123 4567,
// для которого используется страна defaultCountryCode (код без "+").
func Normalize(raw, defaultCountryCode string) (string, error) {
	s := separators.Replace(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrEmptyPhone
	}

	international := false
	digits := s
	switch {
	case strings.HasPrefix(s, "+"):
		international = true
		digits = s[1:]
	case strings.HasPrefix(s, "00"):
		international = true
		digits = s[2:]
	}

	// буквы библиотека переводит в цифры как vanity-номер, такие номера не принимаем
	if !digitsRegex.MatchString(digits) {
		return "", ErrInvalidFormat
	}

	region := ""
	if !international {
		region = regionFor(defaultCountryCode)
		if region == "" {
			return "", ErrNoCountryCode
		}
	}

	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", ErrInvalidLength
	}

	toParse := digits
	if international {
		toParse = "+" + digits
	}
	num, err := phonenumbers.Parse(toParse, region)
	if err != nil {
		switch {
		case errors.Is(err, phonenumbers.ErrTooShortNSN), errors.Is(err, phonenumbers.ErrNumTooLong),
			errors.Is(err, phonenumbers.ErrTooShortAfterIDD):
			return "", ErrInvalidLength
		default:
			return "", ErrInvalidNumber
		}
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsValid true, если номер нормализуется
func IsValid(raw, defaultCountryCode string) bool {
	_, err := Normalize(raw, defaultCountryCode)
	return err == nil
}

// regionFor регион libphonenumber (ZA) по коду страны (27 или +27)
func regionFor(countryCode string) string {
	code, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(countryCode), "+"))
	if err != nil || code <= 0 {
		return ""
	}
	region := phonenumbers.GetRegionCodeForCountryCode(code)
	if region == "" || region == phonenumbers.UNKNOWN_REGION {
		return ""
	}
	return region
}
