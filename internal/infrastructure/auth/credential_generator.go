package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/you/hotelauthsvc/domain"
)

// Character sets exclude visually ambiguous glyphs (0/O, 1/l/I).
const (
	upperChars  = "ABCDEFGHJKMNPQRSTUVWXYZ"
	lowerChars  = "abcdefghjkmnpqrstuvwxyz"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*-_=+?"

	passwordLength = 16
	loginSuffixLen = 6
)

// CredentialGeneratorImpl implements domain.CredentialGenerator
type CredentialGeneratorImpl struct{}

// NewCredentialGenerator creates a crypto/rand-backed credential generator
func NewCredentialGenerator() domain.CredentialGenerator {
	return &CredentialGeneratorImpl{}
}

// Password generates a high-entropy password containing at least one
// character from each of the four classes. One mandatory character is drawn
// per class, the rest from the union, then the whole buffer is shuffled with
// Fisher-Yates so the mandatory characters are not positionally predictable.
func (g *CredentialGeneratorImpl) Password() (string, error) {
	all := upperChars + lowerChars + digitChars + symbolChars

	buf := make([]byte, 0, passwordLength)
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		ch, err := randomChar(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	for len(buf) < passwordLength {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}

	// Fisher-Yates with crypto/rand indexes
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

// OrgID generates a candidate tenant identifier of the form ORG-###.
// Collisions are expected at this density; the provisioning loop retries.
func (g *CredentialGeneratorImpl) OrgID() (string, error) {
	n, err := randomInt(900)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORG-%03d", n+100), nil
}

// LoginID generates a candidate corporate login identifier.
func (g *CredentialGeneratorImpl) LoginID() (string, error) {
	suffix := make([]byte, loginSuffixLen)
	for i := range suffix {
		ch, err := randomChar(lowerChars + digitChars)
		if err != nil {
			return "", err
		}
		suffix[i] = ch
	}
	return "corp-" + string(suffix), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random number: %w", err)
	}
	return int(v.Int64()), nil
}
