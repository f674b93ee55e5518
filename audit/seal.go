package audit

import (
	"fmt"
	"time"

	"github.com/weiawesome/typedid/envelope"
	"github.com/weiawesome/typedid/id"
	"github.com/weiawesome/typedid/pkg/jwt"
)

// Signer issues signed tokens for records. *jwt.Manager implements it.
type Signer interface {
	Sign(label, rawID string, createdAt time.Time, metadata map[string]string) (string, error)
}

// Verifier checks tokens issued by a Signer. *jwt.Manager implements it.
type Verifier interface {
	Validate(token string) (*jwt.Claims, error)
}

// Seal signs rec so it can travel through untrusted hands.
func Seal(s Signer, rec Record) (string, error) {
	return s.Sign(rec.Label, rec.ID, rec.CreatedAt, rec.Metadata)
}

// Unseal verifies token and returns the record it carries.
func Unseal(v Verifier, token string) (Record, error) {
	claims, err := v.Validate(token)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Label:     claims.Subject,
		ID:        claims.ID,
		CreatedAt: claims.CreatedAt.UTC(),
		Metadata:  claims.Metadata,
	}, nil
}

// SealEnvelope signs env.
func SealEnvelope[E any, R comparable](s Signer, env envelope.Envelope[E, R]) (string, error) {
	rec, err := FromEnvelope(env)
	if err != nil {
		return "", err
	}
	return Seal(s, rec)
}

// OpenEnvelope verifies token and rebuilds the envelope as an E. A token
// minted for another label is a FormatError.
func OpenEnvelope[E any, R comparable](v Verifier, token string) (envelope.Envelope[E, R], error) {
	rec, err := Unseal(v, token)
	if err != nil {
		return envelope.Envelope[E, R]{}, err
	}
	if want := id.LabelOf[E](); rec.Label != want {
		return envelope.Envelope[E, R]{}, &id.FormatError{
			Label: want,
			Input: id.Join(rec.Label, rec.ID),
			Err:   fmt.Errorf("token was issued for label %q", rec.Label),
		}
	}
	i, err := id.Parse[E, R](rec.ID)
	if err != nil {
		return envelope.Envelope[E, R]{}, err
	}
	return envelope.FromParts(i, rec.CreatedAt, rec.Metadata), nil
}
