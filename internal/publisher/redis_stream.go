package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/delphi/internal/analysis"
)

// PropAnalysisStream carries one entry per published prop table
const PropAnalysisStream = "props.analysis.basketball_nba"

// streamMaxLen caps the stream; consumers only read recent runs
const streamMaxLen = 5000

// Envelope is the published form of a prop table
type Envelope struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Table       *analysis.Table `json:"table"`
}

// Run stamps every table of one analysis run with the same id, whether or
// not the tables are published
type Run struct {
	ID string
}

// NewRun starts a run with a fresh id
func NewRun() Run {
	return Run{ID: uuid.NewString()}
}

// Wrap stamps a table with the run id
func (r Run) Wrap(table *analysis.Table) Envelope {
	return Envelope{RunID: r.ID, GeneratedAt: time.Now().UTC(), Table: table}
}

// RedisStreamPublisher publishes analysis results to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
	run    Run
}

// NewRedisStreamPublisher creates a publisher from an existing client. Every
// table it publishes carries the run's id.
func NewRedisStreamPublisher(client *redis.Client, run Run) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		run:    run,
	}
}

// RunID identifies this analysis run
func (rsp *RedisStreamPublisher) RunID() string {
	return rsp.run.ID
}

// Wrap stamps a table with the run id
func (rsp *RedisStreamPublisher) Wrap(table *analysis.Table) Envelope {
	return rsp.run.Wrap(table)
}

// PublishPropTable appends a table to the analysis stream
func (rsp *RedisStreamPublisher) PublishPropTable(ctx context.Context, table *analysis.Table) error {
	data, err := json.Marshal(rsp.Wrap(table))
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: PropAnalysisStream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"run_id":    rsp.run.ID,
			"market":    table.Market.Key,
			"date":      table.Date,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
