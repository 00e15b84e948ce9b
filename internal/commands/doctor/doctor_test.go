package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/hay-kot/fastcuid/internal/core/config"
	"github.com/hay-kot/fastcuid/pkg/cuid2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenSource struct{}

func (brokenSource) Fill([]byte) error {
	return errors.New("device missing")
}

type zeroSource struct{}

func (zeroSource) Fill(p []byte) error {
	clear(p)
	return nil
}

func TestEntropyCheck(t *testing.T) {
	tests := []struct {
		name   string
		source cuid2.EntropySource
		want   Status
	}{
		{"crypto source", cuid2.CryptoSource{}, StatusPass},
		{"broken source", brokenSource{}, StatusFail},
		{"constant source", zeroSource{}, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewEntropyCheck(tt.source).Run(context.Background())

			assert.Equal(t, "Entropy Source", result.Name)
			require.NotEmpty(t, result.Items)
			assert.Equal(t, tt.want, result.Items[len(result.Items)-1].Status)
		})
	}
}

func TestGeneratorCheck_Pass(t *testing.T) {
	result := NewGeneratorCheck(cuid2.New(), 200).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Detail, "200 unique identifiers")
}

func TestGeneratorCheck_EntropyFailure(t *testing.T) {
	gen := cuid2.New(cuid2.WithEntropySource(brokenSource{}))
	result := NewGeneratorCheck(gen, 10).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Fingerprint", result.Items[0].Label)
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestConfigCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	result := NewConfigCheck(&cfg, "").Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	cfg.Batch.Workers = 0
	cfg.Generator.RandomBytes = 16
	result = NewConfigCheck(&cfg, "").Run(context.Background())
	_, warned, failed := Summary([]Result{result})
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, warned)

	result = NewConfigCheck(nil, "").Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestRunAll_SetsStatusStrings(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		NewEntropyCheck(cuid2.CryptoSource{}),
		NewEntropyCheck(brokenSource{}),
	})

	require.Len(t, results, 2)
	assert.Equal(t, "pass", results[0].Items[0].StatusStr)
	assert.Equal(t, "fail", results[1].Items[0].StatusStr)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 0, warned)
	assert.Equal(t, 1, failed)
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, []Check{NewEntropyCheck(cuid2.CryptoSource{})})
	assert.Empty(t, results)
}
