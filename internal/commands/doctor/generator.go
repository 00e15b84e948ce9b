package doctor

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hay-kot/fastcuid/pkg/cuid2"
)

// EntropyCheck verifies the secure random source returns bytes.
type EntropyCheck struct {
	source cuid2.EntropySource
}

// NewEntropyCheck creates a new entropy source check.
func NewEntropyCheck(source cuid2.EntropySource) *EntropyCheck {
	return &EntropyCheck{source: source}
}

func (c *EntropyCheck) Name() string {
	return "Entropy Source"
}

func (c *EntropyCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	a := make([]byte, 32)
	b := make([]byte, 32)
	if err := c.source.Fill(a); err != nil {
		result.fail("Read random bytes", err.Error())
		return result
	}
	if err := c.source.Fill(b); err != nil {
		result.fail("Read random bytes", err.Error())
		return result
	}
	result.pass("Read random bytes", "")

	if bytes.Equal(a, b) {
		result.fail("Reads differ", "two consecutive reads returned identical bytes")
		return result
	}
	result.pass("Reads differ", "")

	return result
}

// GeneratorCheck initializes a generator and runs a short self-test.
type GeneratorCheck struct {
	gen     *cuid2.Generator
	samples int
}

// NewGeneratorCheck creates a check that generates samples identifiers.
func NewGeneratorCheck(gen *cuid2.Generator, samples int) *GeneratorCheck {
	return &GeneratorCheck{gen: gen, samples: max(samples, 1)}
}

func (c *GeneratorCheck) Name() string {
	return "Generator"
}

func (c *GeneratorCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	fp, err := c.gen.Fingerprint()
	if err != nil {
		result.fail("Fingerprint", err.Error())
		return result
	}
	result.pass("Fingerprint", hex.EncodeToString(fp[:4]))

	start := time.Now()
	seen := make(map[string]struct{}, c.samples)
	for i := 0; i < c.samples; i++ {
		if err := ctx.Err(); err != nil {
			result.fail("Self-test", err.Error())
			return result
		}

		id, err := c.gen.Generate()
		if err != nil {
			result.fail("Self-test", err.Error())
			return result
		}
		if err := cuid2.Validate(id); err != nil {
			result.fail("Self-test", fmt.Sprintf("%s: %v", id, err))
			return result
		}
		if _, dup := seen[id]; dup {
			result.fail("Self-test", fmt.Sprintf("duplicate identifier %s after %d samples", id, i))
			return result
		}
		seen[id] = struct{}{}
	}

	perID := time.Since(start) / time.Duration(c.samples)
	result.pass("Self-test", fmt.Sprintf("%d unique identifiers, %s each", c.samples, perID))

	return result
}
