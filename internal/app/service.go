// Package service runs the O*NET derivation pipeline: it streams the source
// tables through the worker pool into the aggregation store, normalizes the
// drained buckets and builds the artifact.
package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/delfos/internal/adapters/artifact"
	eventqueue "github.com/okian/delfos/internal/adapters/mq/queue"
	workerpool "github.com/okian/delfos/internal/adapters/mq/worker"
	"github.com/okian/delfos/internal/adapters/repository"
	"github.com/okian/delfos/internal/adapters/source"
	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/classify"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/normalize"
	"github.com/okian/delfos/internal/domain/occupation"
	"github.com/okian/delfos/internal/domain/profession"
	"github.com/okian/delfos/internal/domain/scoring"
	"github.com/okian/delfos/pkg/logger"
	"github.com/okian/delfos/pkg/metrics"
)

const previewSize = 5

// Service derives per-profession aptitude vectors from an O*NET directory.
// A Service holds configuration only; every Run builds fresh aggregation
// state, so runs are independent.
type Service struct {
	// Inputs
	sourceDir string
	tables    []string

	// Domain configuration
	classifier  scoring.Classifier
	professions profession.Table

	// Concurrency
	workerCount int
	queueSize   int
	shardCount  int

	clock func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSourceDir sets the directory holding the O*NET tables.
func WithSourceDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.sourceDir = dir
		}
	}
}

// WithTables sets which tables are read, in canonical order.
func WithTables(tables []string) Option {
	return func(s *Service) {
		if len(tables) > 0 {
			s.tables = append([]string(nil), tables...)
		}
	}
}

// WithClassifier sets the element-name classifier.
func WithClassifier(c scoring.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithProfessions sets the profession to occupational codes table.
func WithProfessions(t profession.Table) Option {
	return func(s *Service) {
		if len(t) > 0 {
			s.professions = t
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the row queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithShardCount sets the number of aggregation store shards.
func WithShardCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// WithClock sets the source of the artifact timestamp.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourceDir:   "../db_30_0_text",
		tables:      model.KnownTables(),
		classifier:  classify.Default(),
		professions: profession.Default(),
		workerCount: runtime.NumCPU(),
		queueSize:   10_000,
		shardCount:  8,
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one derivation. It returns the artifact only when every table
// was read and every row aggregated; on any failure nothing is returned.
func (s *Service) Run(ctx context.Context) (*artifact.Artifact, error) {
	log := s.logger
	if log == nil {
		log = logger.Get()
	}
	log = log.With(logger.String("run_id", uuid.NewString()))

	started := time.Now()
	log.Info(ctx, "starting derivation",
		logger.String("sourceDir", s.sourceDir),
		logger.Int("tables", len(s.tables)),
		logger.Int("professions", len(s.professions)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)

	tables, err := source.Open(s.sourceDir, s.tables)
	if err != nil {
		return nil, err
	}

	store := repository.NewMemoryStore(repository.WithShardCount(s.shardCount))
	defer func() { _ = store.Close() }()

	pool, err := s.aggregate(ctx, log, tables, store)
	if err != nil {
		return nil, err
	}
	metrics.RecordStageDuration("aggregate", time.Since(started).Seconds())

	stage := time.Now()
	snap := store.Snapshot(ctx)
	ids := s.professions.IDs()
	res := normalize.Compute(ids, aptitude.All(), snap.Buckets)
	for apt, v := range res.GlobalMax {
		metrics.UpdateAptitudeGlobalMax(string(apt), v)
	}
	metrics.RecordStageDuration("normalize", time.Since(stage).Seconds())

	stage = time.Now()
	art := artifact.Build(s.clock(), ids, snap, res)
	metrics.UpdateProfessionCount(len(art.Professions))
	metrics.RecordStageDuration("build", time.Since(stage).Seconds())

	stats := pool.Stats()
	log.Info(ctx, "derivation complete",
		logger.Int("rowsProcessed", int(stats.Processed())),
		logger.Int("rowsContributed", int(stats.Contributed())),
		logger.Int("buckets", store.Count(ctx)),
		logger.Int("professions", len(art.Professions)),
		logger.Duration("elapsed", time.Since(started)),
	)
	for reason, n := range stats.Skipped() {
		log.Debug(ctx, "rows skipped",
			logger.String("reason", string(reason)),
			logger.Int("count", int(n)),
		)
	}
	s.preview(ctx, log, art)

	return art, nil
}

// aggregate streams every table into the worker pool and returns once the
// pool has drained, which is the barrier before normalization.
func (s *Service) aggregate(ctx context.Context, log logger.Logger, tables []source.Table, store repository.Store) (*workerpool.Pool, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	matcher := occupation.NewMatcher(s.professions)
	scorer := scoring.NewTableScorer(s.classifier, matcher)
	pool := workerpool.NewPool(s.workerCount, queue, scorer, store)
	pool.Start(runCtx)
	log.Debug(ctx, "aggregation started",
		logger.Int("codes", matcher.Codes()),
		logger.Int("workers", pool.Size()),
		logger.Int("tables", len(tables)),
	)

	producers, pctx := errgroup.WithContext(runCtx)
	for _, t := range tables {
		producers.Go(func() error {
			return s.produce(pctx, log, queue, t)
		})
	}

	readErr := make(chan error, 1)
	go func() {
		err := producers.Wait()
		_ = queue.Close()
		readErr <- err
	}()

	poolErr := pool.Wait()
	if poolErr != nil {
		cancel()
	}
	rerr := <-readErr

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("derivation canceled: %w", err)
	}
	if poolErr != nil {
		return nil, fmt.Errorf("aggregate: %w", poolErr)
	}
	if rerr != nil {
		return nil, rerr
	}
	return pool, nil
}

// produce enqueues every row of one table. A missing table is logged and
// skipped.
func (s *Service) produce(ctx context.Context, log logger.Logger, queue eventqueue.Queue, t source.Table) error {
	if !t.Exists() {
		metrics.RecordTableMissing(t.Name)
		log.Warn(ctx, "source table missing, skipping", logger.String("table", t.Name))
		return nil
	}

	rows := 0
	for row, err := range t.Rows() {
		if err != nil {
			return err
		}
		metrics.RecordRowRead(t.Name)
		if err := queue.Enqueue(ctx, row); err != nil {
			return err
		}
		rows++
	}

	log.Debug(ctx, "source table loaded",
		logger.String("table", t.Name),
		logger.Int("rows", rows),
	)
	return nil
}

// preview logs the strongest aptitudes of every profession.
func (s *Service) preview(ctx context.Context, log logger.Logger, art *artifact.Artifact) {
	for _, id := range art.ProfessionIDs() {
		req := art.Professions[id]
		top := req.Top(previewSize)
		fields := []logger.Field{
			logger.String("profession", string(id)),
			logger.Int("elements", req.Meta.TotalElements),
		}
		for i, sc := range top {
			fields = append(fields, logger.Float64(fmt.Sprintf("%d.%s", i+1, sc.Aptitude), sc.Value))
		}
		log.Info(ctx, "profession preview", fields...)
		codes, _ := s.professions.Codes(id)
		log.Debug(ctx, "profession vector",
			logger.String("profession", string(id)),
			logger.Any("codes", codes),
			logger.Any("req", req.Req),
		)
	}
}
