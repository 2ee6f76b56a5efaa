package orders

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
)

const (
	numberPrefix     = "ORD"
	numberRandomLen  = 6
	numberMaxRetries = 10
	base36Alphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NumberExistsFunc reports whether an order number is already taken.
type NumberExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator produces human-readable unique order numbers of the form
// ORD-<ms-timestamp>-<6-char-base36>. The existence pre-check is an
// optimization; the orders table's unique constraint is the real guarantee.
type NumberGenerator struct {
	exists NumberExistsFunc
	now    func() time.Time
	random func() (string, error)
}

// NewNumberGenerator builds a generator backed by the given existence check.
func NewNumberGenerator(exists NumberExistsFunc) *NumberGenerator {
	return &NumberGenerator{
		exists: exists,
		now:    time.Now,
		random: randomBase36,
	}
}

// Next returns a fresh order number, retrying on collision at most 10 times
// before giving up with OrderNumberExhausted.
func (g *NumberGenerator) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < numberMaxRetries; attempt++ {
		suffix, err := g.random()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating order number")
		}
		candidate := fmt.Sprintf("%s-%d-%s", numberPrefix, g.now().UnixMilli(), suffix)

		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking order number")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeOrderNumberExhausted, "could not generate a unique order number")
}

func randomBase36() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < numberRandomLen; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36Alphabet[n.Int64()])
	}
	return sb.String(), nil
}
