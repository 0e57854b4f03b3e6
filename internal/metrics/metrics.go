// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsValidated counts bulk CSV rows by outcome ("valid" or "invalid").
	RowsValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annexvii",
		Subsystem: "bulk",
		Name:      "rows_validated_total",
		Help:      "CSV rows processed by the bulk validator, by outcome.",
	}, []string{"outcome"})

	// SectionMutations counts draft and template section writes by section.
	SectionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annexvii",
		Subsystem: "draft",
		Name:      "section_mutations_total",
		Help:      "Section write operations applied to drafts and templates.",
	}, []string{"section"})

	// Declarations counts drafts promoted to submissions by initial state.
	Declarations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annexvii",
		Subsystem: "submission",
		Name:      "declarations_total",
		Help:      "Drafts declared as submissions, by initial lifecycle state.",
	}, []string{"state"})

	// ActualUpdates counts estimate-to-actual reconciliation writes.
	ActualUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "annexvii",
		Subsystem: "submission",
		Name:      "actual_updates_total",
		Help:      "Post-submission updates replacing estimates with actuals.",
	})
)
