package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/ultrai/ultrai/internal/logger"
)

const (
	streamName = "ultrai_runs"
	// Runs older than this age out of the journal.
	retention = 90 * 24 * time.Hour
)

// Run is one journal entry, written once when a wizard run finishes.
type Run struct {
	ID             string    `json:"id"`
	Prompt         string    `json:"prompt"`
	Models         []string  `json:"models"`
	Pattern        string    `json:"pattern"`
	OutputFormat   string    `json:"output_format"`
	EstimatedCost  float64   `json:"estimated_cost"`
	ProcessingTime float64   `json:"processing_time,omitempty"`
	Errored        bool      `json:"errored"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	When           time.Time `json:"when"`
}

// subjectFor builds the subject for one run. The pattern name is slugified
// so free-form pattern strings can never produce an invalid subject token.
func subjectFor(pattern string) string {
	token := slug.Make(pattern)
	if token == "" {
		token = "unknown"
	}
	return fmt.Sprintf("ultrai.runs.%s", token)
}

// Journal is a handle to the run journal: the embedded server, its
// in-process connection, and the runs stream.
type Journal struct {
	ns     *server.Server
	nc     *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

// Open starts the embedded server under dataDir and ensures the runs
// stream exists.
func Open(ctx context.Context, dataDir string) (*Journal, error) {
	ns, err := StartEmbedded(dataDir)
	if err != nil {
		return nil, fmt.Errorf("starting journal server: %w", err)
	}

	nc, err := ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting to journal server: %w", err)
	}

	js, err := newJetStream(nc)
	if err != nil {
		Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"ultrai.runs.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   retention,
	})
	if err != nil {
		Shutdown(nc, ns)
		return nil, fmt.Errorf("creating runs stream: %w", err)
	}

	return &Journal{ns: ns, nc: nc, js: js, stream: stream}, nil
}

// Close shuts the journal down.
func (j *Journal) Close() error {
	return Shutdown(j.nc, j.ns)
}

// Record appends one run to the journal. The run gets an ID and timestamp
// if the caller left them unset.
func (j *Journal) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.When.IsZero() {
		run.When = time.Now()
	}

	data, err := json.Marshal(run)
	if err != nil {
		return Run{}, fmt.Errorf("encoding run: %w", err)
	}

	subject := subjectFor(run.Pattern)
	logger.Debug("Recording run %s to %s", run.ID, subject)

	if _, err := j.js.Publish(ctx, subject, data); err != nil {
		return Run{}, fmt.Errorf("publishing run: %w", err)
	}
	return run, nil
}

// Runs reads the full journal in chronological order. Malformed entries
// are skipped with a warning rather than failing the whole read.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	consumer, err := j.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: "ultrai.runs.>",
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating journal consumer: %w", err)
	}

	var (
		runs      []Run
		malformed int
	)
	const batchSize = 1000
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var run Run
			if err := json.Unmarshal(msg.Data(), &run); err != nil {
				malformed++
				msg.Ack()
				continue
			}
			runs = append(runs, run)
			msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed journal entries", malformed)
	}
	return runs, nil
}
