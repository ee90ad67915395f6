package jsondiff_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/jsondiff"
	"github.com/haleyrc/jsonv/value"
)

func TestValidatePassesFiniteTree(t *testing.T) {
	t.Parallel()

	tree := value.ObjectValue(
		value.Pair{Key: "a", Val: value.ArrayValue(value.DecimalValue(1.5), value.IntegerValue(2))},
	)
	assert.NoError(t, jsondiff.Validate(tree))
}

func TestValidateFailsOnNonFiniteDecimal(t *testing.T) {
	t.Parallel()

	tree := value.ObjectValue(
		value.Pair{Key: "a", Val: value.ArrayValue(value.IntegerValue(1), value.DecimalValue(math.NaN()))},
	)
	err := jsondiff.Validate(tree)
	var ve *jsondiff.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, jsondiff.NonFiniteNumber, ve.Code)
	assert.Equal(t, ".a[1]", ve.Path.String())
}

func TestValidateWithLoggerEmitsDebugRecordOnFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree := value.DecimalValue(math.Inf(1))
	err := jsondiff.Validate(tree, logger)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "validation failed")
}
