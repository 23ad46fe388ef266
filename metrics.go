package viewscene

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sceneLabel = "scene"
	modeLabel  = "mode"
)

var (
	sceneFramesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viewscene_frames_total",
		Help: "The number of frames rendered.",
	}, []string{sceneLabel})

	sceneBoundsRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viewscene_bounds_recomputes_total",
		Help: "The number of full bounding box recomputations.",
	}, []string{sceneLabel})

	sceneSortedPrimitives = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viewscene_sorted_primitives_total",
		Help: "The number of blended primitives drawn in depth order.",
	}, []string{sceneLabel})

	sceneDrags = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viewscene_drags_total",
		Help: "The number of pointer drags started.",
	}, []string{sceneLabel, modeLabel})
)

func instrumentCountFrame(tag string) {
	sceneFramesTotal.
		With(prometheus.Labels{sceneLabel: tag}).
		Inc()
}

func instrumentCountBoundsRecompute(tag string) {
	sceneBoundsRecomputes.
		With(prometheus.Labels{sceneLabel: tag}).
		Inc()
}

func instrumentCountSortedPrimitives(tag string, n int) {
	sceneSortedPrimitives.
		With(prometheus.Labels{sceneLabel: tag}).
		Add(float64(n))
}

func instrumentCountDrag(tag string, mode MouseMode) {
	sceneDrags.
		With(prometheus.Labels{sceneLabel: tag, modeLabel: mode.String()}).
		Inc()
}

// instrumentForgetScene drops every series of a closed scene.
func instrumentForgetScene(tag string) {
	labels := prometheus.Labels{sceneLabel: tag}
	sceneFramesTotal.DeletePartialMatch(labels)
	sceneBoundsRecomputes.DeletePartialMatch(labels)
	sceneSortedPrimitives.DeletePartialMatch(labels)
	sceneDrags.DeletePartialMatch(labels)
}
