package telemetry

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSetupDisabledInstallsNoop(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Setup(ctx, Options{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer shutdown(ctx)

	_, span := Tracer("test").Start(ctx, "noop")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("disabled telemetry should produce invalid span contexts")
	}
	if span.IsRecording() {
		t.Error("disabled telemetry should not record")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "AlwaysOnSampler"},
		{1, "AlwaysOnSampler"},
		{-2, "AlwaysOnSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		desc := sampler(tt.ratio).Description()
		if !strings.HasPrefix(desc, "ParentBased{") || !strings.Contains(desc, tt.want) {
			t.Errorf("sampler(%v) = %s, want a parent-based %s", tt.ratio, desc, tt.want)
		}
	}
}

func TestResourceNamesService(t *testing.T) {
	res, err := newResource(context.Background())
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	v, ok := res.Set().Value(attribute.Key("service.name"))
	if !ok || v.AsString() != serviceName {
		t.Errorf("service.name = %v (%v), want %q", v.AsString(), ok, serviceName)
	}
}
