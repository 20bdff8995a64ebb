package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/internal/api/metrics"
	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	appendTimeout  = 5 * time.Second
	drainTimeout   = 10 * time.Second
)

// Dispatcher anchors signed certificates to the ledger using a fixed set of
// workers. Jobs are sharded on the certificate id, so entries for one
// certificate are written in the order they were signed.
//
// When the context passed to Start is cancelled, each worker anchors what is
// still buffered for up to drainTimeout and logs how many jobs it had to drop.
type Dispatcher struct {
	workers      []chan ports.AnchorJob
	ledger       ports.LedgerRepository
	log          zerolog.Logger
	now          func() time.Time
	drainTimeout time.Duration
	wg           sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, ledger ports.LedgerRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AnchorJob, numWorkers),
		ledger:  ledger,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		drainTimeout: drainTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AnchorJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after draining their buffers.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker has drained and returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a job to the worker responsible for its certificate. It never
// blocks the signing request: when the worker's buffer is full the job is
// dropped and logged.
func (d *Dispatcher) Enqueue(job ports.AnchorJob) {
	idx := d.shardIndex(job.CertificateID)
	select {
	case d.workers[idx] <- job:
		metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Error().
			Str("certificate_id", job.CertificateID).
			Int("worker_id", idx).
			Msg("ledger queue full, anchor job dropped")
	}
}

// shardIndex maps a certificate id deterministically to a worker index.
func (d *Dispatcher) shardIndex(certificateID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(certificateID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AnchorJob) {
	label := strconv.Itoa(id)
	for {
		if ctx.Err() != nil {
			d.drain(ctx, id, ch)
			return
		}
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case job := <-ch:
			metrics.LedgerQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.anchor(ctx, id, job)
		}
	}
}

// drain anchors the jobs left in ch until it is empty or drainTimeout passes.
// Jobs found after the deadline are counted as dropped.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan ports.AnchorJob) {
	deadline := time.Now().Add(d.drainTimeout)
	anchored, dropped := 0, 0
	for {
		select {
		case job := <-ch:
			if time.Now().After(deadline) {
				dropped++
				continue
			}
			d.anchor(ctx, id, job)
			anchored++
		default:
			metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			switch {
			case dropped > 0:
				d.log.Error().Int("worker_id", id).Int("anchored", anchored).Int("dropped", dropped).
					Msg("ledger queue drained with dropped jobs")
			case anchored > 0:
				d.log.Info().Int("worker_id", id).Int("anchored", anchored).Msg("ledger queue drained")
			}
			return
		}
	}
}

func (d *Dispatcher) anchor(ctx context.Context, workerID int, job ports.AnchorJob) {
	start := time.Now()
	entry := &domain.LedgerEntry{
		CertificateID: job.CertificateID,
		CertID:        job.CertID,
		SignedBy:      job.SignedBy,
		Receipt:       uuid.NewString(),
		AnchoredAt:    d.now(),
	}

	// Appends run detached from ctx, bounded by appendTimeout.
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	if err := d.ledger.Append(appendCtx, entry); err != nil {
		metrics.LedgerAnchorDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("certificate_id", job.CertificateID).
			Int("worker_id", workerID).
			Msg("ledger anchoring failed")
		return
	}

	metrics.LedgerAnchorDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	d.log.Info().
		Str("certificate_id", job.CertificateID).
		Str("receipt", entry.Receipt).
		Msg("certificate anchored")
}
