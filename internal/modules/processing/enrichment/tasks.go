package enrichment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/promptfinder/core/internal/pkg/taskqueue"
)

// Task types carried by the Redis queue.
const (
	TaskTypePass1  = "enrich:pass1"
	TaskTypePass2  = "enrich:pass2"
	TaskTypeRename = "media:rename"
)

// pass2Delay gives the upload pipeline time to finish writing media
// variants before the review re-reads the image.
const pass2Delay = 45 * time.Second

// EnqueuePass1 schedules a first-pass enrichment. Deduplicated on item id,
// so double submission from the admin UI collapses into one task.
func (s *Service) EnqueuePass1(ctx context.Context, itemID string) (*taskqueue.Task, error) {
	task, err := s.tasks.Enqueue(ctx, TaskTypePass1, taskPayload{ItemID: itemID}, itemID, itemID)
	if err != nil {
		return nil, err
	}
	if task.Status == taskqueue.TaskPending {
		go s.executePass1(context.Background(), task.ID, itemID)
	}
	return task, nil
}

func (s *Service) executePass1(ctx context.Context, taskID, itemID string) {
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")
	res := s.RunPass1(ctx, itemID)
	s.finishTask(ctx, taskID, res)
}

func (s *Service) executePass2(ctx context.Context, taskID, itemID string) {
	time.Sleep(pass2Delay)
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")
	res := s.RunPass2(ctx, itemID)
	s.finishTask(ctx, taskID, res)
}

func (s *Service) finishTask(ctx context.Context, taskID string, res Result) {
	switch res.Status {
	case StatusError:
		s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, res, res.Reason)
	default:
		s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, res, "")
	}
}

// enqueueRename schedules the SEO media rename. Failures only log; the
// rename is cosmetic and must never block enrichment.
func (s *Service) enqueueRename(ctx context.Context, itemID string) {
	if s.renamer == nil {
		return
	}
	task, err := s.tasks.Enqueue(ctx, TaskTypeRename, taskPayload{ItemID: itemID}, itemID, itemID)
	if err != nil {
		s.log.Warn("rename enqueue failed", zap.String("item_id", itemID), zap.Error(err))
		return
	}
	if task.Status == taskqueue.TaskPending {
		go s.executeRename(context.Background(), task.ID, itemID)
	}
}

func (s *Service) executeRename(ctx context.Context, taskID, itemID string) {
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")
	if err := s.renamer.RenameForSEO(ctx, itemID); err != nil {
		s.log.Warn("media rename failed", zap.String("item_id", itemID), zap.Error(err))
		s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	s.tasks.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, nil, "")
}
