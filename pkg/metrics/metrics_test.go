package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("derive"),
				WithHistogramBuckets([]float64{0.1, 1}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered on the given registry", func() {
				So(manager.Registry(), ShouldEqual, registry)
				manager.rowsRead.WithLabelValues("Skills.txt").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := []string{}
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_derive_rows_read_total")
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording rows", func() {
			before := testutil.ToFloat64(globalManager.rowsSkipped.WithLabelValues("Skills.txt", "scale_level"))
			RecordRowRead("Skills.txt")
			RecordRowSkipped("Skills.txt", "scale_level")
			RecordRowSkipped("Skills.txt", "scale_level")

			Convey("Then counters move per label", func() {
				after := testutil.ToFloat64(globalManager.rowsSkipped.WithLabelValues("Skills.txt", "scale_level"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording aggregation and run metrics", func() {
			So(func() {
				RecordTableMissing("Interests.txt")
				RecordObservationAggregated(2)
				RecordBucketCreated()
				UpdateProfessionCount(20)
				UpdateAptitudeGlobalMax("logica", 0.8)
				UpdateQueueCapacity(10)
				UpdateQueueSize(3)
				UpdateWorkerCount(4)
				RecordWorkerProcessingLatency(0.0001)
				RecordWorkerError()
				RecordStageDuration("aggregate", 0.2)
				MarkSuccess(1)
			}, ShouldNotPanic)

			So(testutil.ToFloat64(globalManager.aptitudeGlobalMax.WithLabelValues("logica")), ShouldEqual, 0.8)
			So(testutil.ToFloat64(globalManager.professions), ShouldEqual, 20)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		manager := NewManager()
		manager.workerCount.Set(3)

		Convey("When writing to a writable path", func() {
			path := filepath.Join(t.TempDir(), "delfos.prom")
			So(manager.WriteTextfile(path), ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(strings.Contains(string(data), "delfos_pipeline_worker_count 3"), ShouldBeTrue)
		})

		Convey("When the directory does not exist", func() {
			err := manager.WriteTextfile(filepath.Join(t.TempDir(), "missing", "delfos.prom"))
			So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
		})
	})
}
