package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"cv-match/internal/repositories"
)

// MatchTask is one (job offer, cv) pair queued for background scoring.
type MatchTask struct {
	JobOfferID uuid.UUID
	CVID       uuid.UUID
}

// Worker scores queued pairs in the background. Used by the batch rescore
// endpoint; a pair scored twice just overwrites its matching, last writer
// wins.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueTask(task MatchTask)
	EnqueueOffer(jobOfferID uuid.UUID) (int, error)
}

type worker struct {
	cvRepo      repositories.CVRepository
	matcher     MatcherService
	taskQueue   chan MatchTask
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(cvRepo repositories.CVRepository, matcher MatcherService, concurrency int) Worker {
	return &worker{
		cvRepo:      cvRepo,
		matcher:     matcher,
		taskQueue:   make(chan MatchTask, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processTasks(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueTask implements Worker.
func (w *worker) EnqueueTask(task MatchTask) {
	select {
	case w.taskQueue <- task:
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue CV %s\n", task.CVID)
	}
}

// EnqueueOffer implements Worker. Queues every stored CV against the offer
// and returns how many pairs were queued.
func (w *worker) EnqueueOffer(jobOfferID uuid.UUID) (int, error) {
	cvs, err := w.cvRepo.FindAll()
	if err != nil {
		return 0, err
	}

	go func() {
		for _, cv := range cvs {
			w.EnqueueTask(MatchTask{JobOfferID: jobOfferID, CVID: cv.ID})
		}
	}()

	return len(cvs), nil
}

func (w *worker) processTasks(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case task := <-w.taskQueue:
			log.Printf("👷 Worker #%d scoring CV %s against offer %s\n", workerID, task.CVID, task.JobOfferID)
			if _, err := w.matcher.Score(ctx, task.JobOfferID, task.CVID); err != nil {
				log.Printf("❌ Worker #%d failed to score CV %s: %v\n", workerID, task.CVID, err)
			}
		}
	}
}
