package clause

import (
	"regexp"
	"strings"
)

// Address holds the parts recovered from a free-form Israeli street address
// such as "גאולים 14 כניסה 2 דירה 7, תל אביב".
type Address struct {
	Street    string
	Apartment string
	Entrance  string
	City      string
}

var (
	apartmentRe = regexp.MustCompile(`דירה\s*(\d+)`)
	entranceRe  = regexp.MustCompile(`כניסה\s*(\d+)`)
	streetRe    = regexp.MustCompile(`^(.*?)\s*\d+`)
)

// Answer keys filled by FillAddress.
const (
	KeyPropertyAddress = "propertyAddress"
	KeyStreet          = "street"
	KeyApartmentNumber = "apartmentNumber"
	KeyEntrance        = "entrance"
	KeyCity            = "city"
)

// ParseAddress extracts the parts it can find. Missing parts are empty.
func ParseAddress(address string) Address {
	var a Address
	if m := apartmentRe.FindStringSubmatch(address); m != nil {
		a.Apartment = m[1]
	}
	if m := entranceRe.FindStringSubmatch(address); m != nil {
		a.Entrance = m[1]
	}
	if m := streetRe.FindStringSubmatch(address); m != nil {
		a.Street = strings.TrimSpace(m[1])
	}
	if parts := strings.Split(address, ","); len(parts) > 1 {
		a.City = strings.TrimSpace(parts[len(parts)-1])
	}
	return a
}

// FillAddress returns a copy of answers where the street, apartment,
// entrance and city keys left blank are derived from propertyAddress.
// Answers the user gave explicitly are never overwritten.
func FillAddress(answers Answers) Answers {
	out := answers.Clone()
	full := answers.Get(KeyPropertyAddress)
	if full == "" {
		return out
	}
	a := ParseAddress(full)
	for key, v := range map[string]string{
		KeyStreet:          a.Street,
		KeyApartmentNumber: a.Apartment,
		KeyEntrance:        a.Entrance,
		KeyCity:            a.City,
	} {
		if v != "" && !out.Answered(key) {
			out[key] = v
		}
	}
	return out
}
