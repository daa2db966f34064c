package config

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

func SetupTracing(logger *log.Logger) (func(context.Context) error, error) {
	if !utils.IsTracingEnabled() {
		return nil, nil
	}

	serviceName := utils.OTelServiceName()

	endpoint := utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	hostport, urlPath, insecure, err := parseOTLPEndpoint(endpoint)

	if err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(hostport),
		otlptracehttp.WithURLPath(urlPath),
	}

	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	attrs := []attribute.KeyValue{attribute.String("service.name", serviceName)}
	if appEnv := GetAppEnv(); appEnv != "" {
		attrs = append(attrs, attribute.String("deployment.environment", appEnv))
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	ratio := samplerRatio(utils.GetEnvTrimmed("OTEL_TRACES_SAMPLER_RATIO"))

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("OpenTelemetry tracing enabled", "service", serviceName, "endpoint", endpoint, "sample_ratio", ratio)

	return tp.Shutdown, nil
}

// samplerRatio clamps OTEL_TRACES_SAMPLER_RATIO to [0,1]; blank or invalid samples everything.
func samplerRatio(raw string) float64 {
	if raw == "" {
		return 1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	return math.Max(0, math.Min(1, v))
}

func parseOTLPEndpoint(raw string) (hostport string, urlPath string, insecure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false, fmt.Errorf("empty OTLP endpoint")
	}

	// http(s)://host:port[/path] or bare host:port.
	if strings.Contains(raw, "://") {
		u, parseErr := url.Parse(raw)
		if parseErr != nil {
			return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, parseErr)
		}
		if u.Host == "" {
			return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
		}

		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return "", "", false, fmt.Errorf("unsupported OTLP endpoint scheme %q in %q; only http and https are supported", u.Scheme, raw)
		}

		path := u.EscapedPath()
		if path == "" || path == "/" {
			path = "/v1/traces"
		}

		insecure = scheme == "http"
		return u.Host, path, insecure, nil
	}

	// WithEndpoint takes host:port only.
	if strings.ContainsAny(raw, "/?#") {
		return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: missing scheme; when specifying a path or query, use an endpoint like \"http://host:port[/path]\"", raw)
	}
	return raw, "/v1/traces", true, nil
}
