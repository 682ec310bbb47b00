package briefing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var toolRounds = promauto.NewCounter(prometheus.CounterOpts{
	Name: "qbit_generation_tool_rounds_total",
	Help: "Search tool rounds executed across all briefing generations.",
})
