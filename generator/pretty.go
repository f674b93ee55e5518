package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/weiawesome/typedid/generator/pretty"
)

// PrettySnowflakeGenerator renders snowflake IDs through a prettifier, e.g.
// "ARPJ-27036-GVQS-07849".
type PrettySnowflakeGenerator struct {
	snowflake  *SnowflakeGenerator
	prettifier *pretty.Prettifier
}

// NewPrettySnowflakeGenerator wraps snowflake. A nil prettifier selects
// pretty.Default().
func NewPrettySnowflakeGenerator(snowflake *SnowflakeGenerator, prettifier *pretty.Prettifier) (*PrettySnowflakeGenerator, error) {
	if snowflake == nil {
		return nil, errors.New("pretty snowflake generator needs a snowflake generator")
	}
	if prettifier == nil {
		prettifier = pretty.Default()
	}
	return &PrettySnowflakeGenerator{snowflake: snowflake, prettifier: prettifier}, nil
}

func (g *PrettySnowflakeGenerator) Generate() (string, error) {
	id, _, err := g.GenerateAt()
	return id, err
}

// GenerateAt returns the next pretty id and the instant encoded in it.
func (g *PrettySnowflakeGenerator) GenerateAt() (string, time.Time, error) {
	seed, at, err := g.snowflake.GenerateAt()
	if err != nil {
		return "", time.Time{}, err
	}
	id, err := g.prettifier.Prettify(seed)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to prettify snowflake %d: %w", seed, err)
	}
	return id, at, nil
}

// Seed recovers the snowflake ID behind a pretty id.
func (g *PrettySnowflakeGenerator) Seed(id string) (int64, error) {
	return g.prettifier.ToIDSeed(id)
}

func (g *PrettySnowflakeGenerator) Inspect(id string) (*ParseResult, error) {
	seed, err := g.prettifier.ToIDSeed(id)
	if err != nil {
		return nil, err
	}
	res, err := g.snowflake.Inspect(seed)
	if err != nil {
		return nil, err
	}
	res.IDLength = int32(len(id))
	return res, nil
}
