// Package observability provides OpenTelemetry tracing and metrics for the
// pay SDK: a span per remote API call, counters for entitlement decisions
// and credential probes, and a health model fed by the credential probe.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("blog")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("paygate"))
//	checker := entitlement.NewChecker(cfg, entitlement.WithMetrics(metrics))
//
// Health Checks:
//
//	health := observability.NewServiceHealth("blog", version.GetShortVersion())
//	health.AddComponent(client.CheckHealth(ctx))
package observability
