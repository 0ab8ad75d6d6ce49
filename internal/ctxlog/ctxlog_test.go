package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("returns embedded logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("panics without logger", func(t *testing.T) {
		assert.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
			FromContext(context.Background())
		})
	})
}

func TestWithScopesAttributes(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	ctx, logger := With(ctx, ResourceKey, "garage")
	logger.Info("first")
	_, nested := With(ctx, StepKey, "bundle")
	nested.Info("second")

	out := buf.String()
	assert.Contains(t, out, "msg=first resource=garage")
	assert.Contains(t, out, "msg=second resource=garage step=bundle")
}

func TestOKAddsMarker(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	OK(logger, "done", "elapsed", "1.00s")

	require.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "msg=done ok=true elapsed=1.00s")
}
