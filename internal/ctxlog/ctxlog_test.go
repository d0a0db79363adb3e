package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	ctx, scoped := With(ctx, "block", "k")
	assert.Same(t, scoped, FromContext(ctx))
	FromContext(ctx).Info("Scheduled block.")
	assert.Contains(t, buf.String(), `msg="Scheduled block." block=k`)
}
