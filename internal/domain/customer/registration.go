package domain_customer

import (
	"strings"
	"unicode"
)

const minNationalIDLength = 10

// Registration is a sign-up request for a new online banking user.
type Registration struct {
	NationalID string
	GivenNames string
	Surnames   string
	Email      string
	Username   string
	Password   string
	Phone      string
	Address    string
}

type NewParams struct {
	NationalID      string
	GivenNames      string
	Surnames        string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
}

func New(p NewParams) (Registration, error) {
	given := collapseSpaces(p.GivenNames)
	if len(strings.Fields(given)) < 2 {
		return Registration{}, ErrGivenNames
	}

	surnames := collapseSpaces(p.Surnames)
	if len(strings.Fields(surnames)) < 2 {
		return Registration{}, ErrSurnames
	}

	if p.Password == "" {
		return Registration{}, ErrMissingPassword
	}
	if p.Password != p.ConfirmPassword {
		return Registration{}, ErrPasswordMismatch
	}

	id := strings.TrimSpace(p.NationalID)
	if len(id) < minNationalIDLength {
		return Registration{}, ErrNationalID
	}

	username := NormalizeUsername(p.Username)
	if username == "" {
		return Registration{}, ErrMissingUsername
	}

	email := strings.TrimSpace(p.Email)
	phone := strings.TrimSpace(p.Phone)
	address := strings.TrimSpace(p.Address)
	if email == "" || phone == "" || address == "" {
		return Registration{}, ErrMissingContact
	}

	return Registration{
		NationalID: id,
		GivenNames: given,
		Surnames:   surnames,
		Email:      email,
		Username:   username,
		Password:   p.Password,
		Phone:      phone,
		Address:    address,
	}, nil
}

// NormalizeUsername upper-cases s and keeps only ASCII letters and digits.
func NormalizeUsername(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
