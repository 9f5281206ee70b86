package accounts

import (
	"crypto/rand"
	"fmt"
	"math/big"

	goerrors "github.com/goliatone/go-errors"
)

// numericCodeGenerator draws zero-padded numeric codes from crypto/rand,
// uniform over the digit space.
type numericCodeGenerator struct {
	digits int
}

// NewCodeGenerator returns a CodeGenerator producing codes of the given
// number of digits. Config.Validate already rejects fewer than 4 digits
// for env-loaded configurations; callers constructing the generator
// directly get a floor of 4 here instead.
func NewCodeGenerator(digits int) CodeGenerator {
	if digits < 4 {
		digits = 4
	}
	return &numericCodeGenerator{digits: digits}
}

func (g *numericCodeGenerator) Generate() (string, error) {
	bound := big.NewInt(10)
	bound.Exp(bound, big.NewInt(int64(g.digits)), nil)

	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate activation code")
	}

	return fmt.Sprintf("%0*d", g.digits, n), nil
}
