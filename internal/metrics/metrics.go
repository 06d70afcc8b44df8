// Package metrics exposes graph gauges on the default prometheus registry,
// served by the private listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ForkFiesta/note-graph-service/internal/graph"
)

var (
	notesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "note_graph",
		Name:      "notes_total",
		Help:      "Number of notes currently in the graph.",
	})

	linksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "note_graph",
		Name:      "links_total",
		Help:      "Number of wiki-link occurrences across all notes.",
	})

	danglingTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "note_graph",
		Name:      "dangling_links_total",
		Help:      "Number of link occurrences whose target is not a note.",
	})
)

// Update refreshes the graph gauges from a stats snapshot.
func Update(st graph.Stats) {
	notesTotal.Set(float64(st.Notes))
	linksTotal.Set(float64(st.Links))
	danglingTotal.Set(float64(st.Dangling))
}
