package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type cfgWithMap struct {
	M StringMap `yaml:"m"`
}

func TestStringMapUnmarshalYAML_VariousFormats(t *testing.T) {
	t.Run("empty string", func(t *testing.T) {
		var c cfgWithMap
		require.NoError(t, yaml.Unmarshal([]byte("m: ''\n"), &c))
		require.NotNil(t, c.M)
		require.Len(t, c.M, 0)
	})

	t.Run("json string", func(t *testing.T) {
		var c cfgWithMap
		require.NoError(t, yaml.Unmarshal([]byte("m: '{\"k1\":\"v1\",\"k2\":\"v2\"}'\n"), &c))
		require.Equal(t, StringMap{"k1": "v1", "k2": "v2"}, c.M)
	})

	t.Run("csv string", func(t *testing.T) {
		var c cfgWithMap
		require.NoError(t, yaml.Unmarshal([]byte("m: 'a=1, b=2, c = 3'\n"), &c))
		require.Equal(t, StringMap{"a": "1", "b": "2", "c": "3"}, c.M)
	})

	t.Run("yaml map", func(t *testing.T) {
		var c cfgWithMap
		require.NoError(t, yaml.Unmarshal([]byte("m:\n  x: 10\n  y: true\n  z: val\n"), &c))
		require.Equal(t, StringMap{"x": "10", "y": "true", "z": "val"}, c.M)
	})

	t.Run("sequence rejected", func(t *testing.T) {
		var c cfgWithMap
		require.Error(t, yaml.Unmarshal([]byte("m:\n  - a\n"), &c))
	})
}

// discardClient is an otlptrace.Client that drops everything.
type discardClient struct{}

func (discardClient) Start(context.Context) error { return nil }
func (discardClient) Stop(context.Context) error  { return nil }
func (discardClient) UploadTraces(context.Context, []*tracepb.ResourceSpans) error {
	return nil
}

func stubExporters(t *testing.T) {
	t.Helper()
	origRes, origHTTP, origGRPC := newResource, newOTLPTraceHTTP, newOTLPTraceGRPC
	prev := otel.GetTracerProvider()
	t.Cleanup(func() {
		newResource, newOTLPTraceHTTP, newOTLPTraceGRPC = origRes, origHTTP, origGRPC
		otel.SetTracerProvider(prev)
	})
	newResource = func(context.Context, ...resource.Option) (*resource.Resource, error) {
		return resource.Default(), nil
	}
	newOTLPTraceHTTP = func(context.Context, ...otlptracehttp.Option) (*otlptrace.Exporter, error) {
		return otlptrace.NewUnstarted(discardClient{}), nil
	}
	newOTLPTraceGRPC = func(context.Context, ...otlptracegrpc.Option) (*otlptrace.Exporter, error) {
		return otlptrace.NewUnstarted(discardClient{}), nil
	}
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), &Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Protocols(t *testing.T) {
	for _, protocol := range []string{"http", "grpc", ""} {
		t.Run("protocol="+protocol, func(t *testing.T) {
			stubExporters(t)
			cfg := &Config{
				Enabled:     true,
				ServiceName: "kukkuta-test",
				Protocol:    protocol,
				Insecure:    true,
				SamplerRate: 2.5,
				Environment: "test",
				Headers:     StringMap{"x-test": "1"},
			}
			shutdown, err := InitTracing(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			require.NotNil(t, shutdown)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestInitTracing_ResourceError(t *testing.T) {
	stubExporters(t)
	newResource = func(context.Context, ...resource.Option) (*resource.Resource, error) {
		return nil, errors.New("boom")
	}
	_, err := InitTracing(context.Background(), &Config{Enabled: true}, zap.NewNop())
	assert.ErrorContains(t, err, "create resource")
}

func TestNormalizeEndpointAndClamp(t *testing.T) {
	assert.Equal(t, "localhost:4318", normalizeEndpoint("", "http"))
	assert.Equal(t, "localhost:4317", normalizeEndpoint("", "grpc"))
	assert.Equal(t, "collector:4317", normalizeEndpoint("https://collector:4317/", "grpc"))
	assert.Equal(t, "collector:4318", normalizeEndpoint("http://collector:4318", "http"))

	assert.Equal(t, 0.0, clampRate(-1))
	assert.Equal(t, 1.0, clampRate(3))
	assert.Equal(t, 0.25, clampRate(0.25))
}

func TestBuilder_SpanScope(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sr),
		sdktrace.WithResource(resource.Empty()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	scope := Tracer("trace-test").Start(context.Background(), "report.approve")
	scope = scope.WithAttrs(attribute.Int64("report.id", 7))
	scope.RecordError(errors.New("already approved"))
	scope.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "report.approve", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	found := false
	for _, a := range spans[0].Attributes() {
		if a.Key == "report.id" && a.Value.AsInt64() == 7 {
			found = true
		}
	}
	assert.True(t, found)

	// nil scope is safe
	var nilScope *SpanScope
	nilScope.RecordError(errors.New("x"))
	nilScope.End()
}
