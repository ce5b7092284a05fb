package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueStudent queues a score recompute for the student. If one is
	// already queued or running the existing job is returned instead of a
	// duplicate.
	EnqueueStudent(studentID uuid.UUID) (*models.ScoreJob, error)
}

type worker struct {
	jobRepo     repositories.ScoreJobRepository
	scorer      ScorerService
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	jobRepo repositories.ScoreJobRepository,
	scorer ScorerService,
	concurrency int,
) Worker {
	return &worker{
		jobRepo:     jobRepo,
		scorer:      scorer,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Pick up jobs left queued across restarts
	w.wg.Add(1)
	go w.pollPendingJobs()

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueStudent implements Worker.
func (w *worker) EnqueueStudent(studentID uuid.UUID) (*models.ScoreJob, error) {
	active, err := w.jobRepo.HasActiveJob(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active jobs: %w", err)
	}
	if active {
		return nil, nil
	}

	job := &models.ScoreJob{
		ID:        uuid.New(),
		StudentID: studentID,
		Status:    models.ScoreJobQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := w.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create score job: %w", err)
	}

	select {
	case w.jobQueue <- job.ID:
		log.Printf("📥 Score job %s enqueued for student %s\n", job.ID, studentID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, job %s stays queued for the poller\n", job.ID)
	}

	return job, nil
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, jobID)
			if err := w.process(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *worker) process(ctx context.Context, jobID uuid.UUID) error {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	if err := w.jobRepo.UpdateStatus(jobID, models.ScoreJobProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	result, err := w.scorer.RecomputeScore(ctx, job.StudentID)
	if err != nil {
		w.jobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to recompute score: %w", err)
	}

	if err := w.jobRepo.UpdateResult(jobID, result.TalentScore, result.Reasoning); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (w *worker) pollPendingJobs() {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending jobs\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				select {
				case w.jobQueue <- job.ID:
				case <-w.stopChan:
					return
				}
			}
		}
	}
}
