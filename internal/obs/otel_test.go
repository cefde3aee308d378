package obs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerInstallsProvider(t *testing.T) {
	// dialing is lazy, so no collector needs to be listening
	shutdown, err := InitTracer(context.Background(), "auction-house-test", "127.0.0.1:4317", "test")
	require.NoError(t, err)

	_, span := otel.Tracer("obs-test").Start(context.Background(), "probe")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
