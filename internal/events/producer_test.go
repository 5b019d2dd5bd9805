package events_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/apatilgtn/Kairos-isdp-sub001/internal/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

type testWriter struct {
	mu     sync.Mutex
	events []cloudevents.Event
	topics []string
}

func (w *testWriter) Write(_ context.Context, topic string, e cloudevents.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
	w.topics = append(w.topics, topic)
	return nil
}

func (w *testWriter) Close(_ context.Context) error {
	return nil
}

func (w *testWriter) written() []cloudevents.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]cloudevents.Event{}, w.events...)
}

func (w *testWriter) writtenTopics() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string{}, w.topics...)
}

var _ = Describe("event producer", func() {
	It("delivers a queued event to the writer", func() {
		writer := &testWriter{}
		producer := events.NewEventProducer(writer, events.WithOutputTopic("test.topic"))
		defer producer.Close()

		err := producer.WriteExportJobEvent(context.TODO(), events.ExportJobCreatedKind, events.ExportJobEvent{
			JobID:           "job-1",
			ProjectID:       "project-1",
			IntegrationType: "confluence",
			Status:          "pending",
			TotalDocuments:  3,
		})
		Expect(err).To(BeNil())

		Eventually(func() int {
			return len(writer.written())
		}, "2s", "10ms").Should(Equal(1))

		e := writer.written()[0]
		Expect(e.Type()).To(Equal(events.ExportJobCreatedKind))
		Expect(e.Source()).To(Equal("kairos.isdp.exporter"))
		Expect(writer.writtenTopics()[0]).To(Equal("test.topic"))

		var payload events.ExportJobEvent
		Expect(json.Unmarshal(e.Data(), &payload)).To(Succeed())
		Expect(payload.JobID).To(Equal("job-1"))
		Expect(payload.TotalDocuments).To(Equal(3))
	})

	It("preserves the order of queued events", func() {
		writer := &testWriter{}
		producer := events.NewEventProducer(writer)
		defer producer.Close()

		kinds := []string{
			events.ExportJobCreatedKind,
			events.ExportJobCompletedKind,
			events.ExportJobFailedKind,
		}
		for _, kind := range kinds {
			Expect(producer.WriteExportJobEvent(context.TODO(), kind, events.ExportJobEvent{JobID: "job-1"})).To(Succeed())
		}

		Eventually(func() int {
			return len(writer.written())
		}, "2s", "10ms").Should(Equal(3))

		written := writer.written()
		for i, kind := range kinds {
			Expect(written[i].Type()).To(Equal(kind))
		}
	})
})
