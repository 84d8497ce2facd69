// Package metrics records pass, phase and task metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// can be switched on without nil checks anywhere else:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	plan, err := pipeline.New(cfg).WithRecorder(recorder).Run(ctx, corpus)
//
// The CLI writes the registry to a textfile after a pass (--metrics-file)
// or serves it over HTTP while watching (--metrics-addr).
package metrics
