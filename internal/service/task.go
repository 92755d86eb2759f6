package service

import (
	"context"
	"errors"
	"log"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepo interface {
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	GetTaskByID(ctx context.Context, taskID int64) (*model.Task, error)
	GetTasksByPinID(ctx context.Context, pinID int64) ([]model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	SetTaskCompleted(ctx context.Context, taskID int64, completed bool) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
	CreateTaskTimeInfo(ctx context.Context, info *model.TaskTimeInfo) (*model.TaskTimeInfo, error)
	GetTaskTimeInfos(ctx context.Context, taskID int64) ([]model.TaskTimeInfo, error)
	DeleteTaskTimeInfo(ctx context.Context, timeInfoID int64) error
	GetMember(ctx context.Context, pinID, userID int64) (*model.Member, error)
}

// TaskService - 핀에 속한 할 일 관리. 모든 작업은 핀 멤버십을 요구한다.
type TaskService struct {
	repo TaskRepo
}

func NewTaskService(repo TaskRepo) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateTask(ctx context.Context, userID, pinID int64, req model.CreateTaskRequest) (*model.TaskInfo, error) {
	if err := s.requireMember(ctx, pinID, userID); err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, &model.Task{
		PinID:         pinID,
		Title:         req.Title,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("task created: taskId=%d pinId=%d userId=%d", task.ID, pinID, userID)
	info := model.TaskInfoFromEntity(task, nil)
	return &info, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID, pinID int64) ([]model.TaskInfo, error) {
	if err := s.requireMember(ctx, pinID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.GetTasksByPinID(ctx, pinID)
	if err != nil {
		return nil, err
	}

	infos := make([]model.TaskInfo, 0, len(tasks))
	for i := range tasks {
		times, err := s.repo.GetTaskTimeInfos(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, model.TaskInfoFromEntity(&tasks[i], times))
	}
	return infos, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID int64, req model.UpdateTaskRequest) (*model.TaskInfo, error) {
	task, err := s.getMemberTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.StartDateTime != nil {
		task.StartDateTime = req.StartDateTime
	}
	if req.EndDateTime != nil {
		task.EndDateTime = req.EndDateTime
	}

	updated, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	log.Printf("task updated: taskId=%d userId=%d", taskID, userID)
	info := model.TaskInfoFromEntity(updated, nil)
	return &info, nil
}

func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (*model.TaskInfo, error) {
	if _, err := s.getMemberTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	updated, err := s.repo.SetTaskCompleted(ctx, taskID, completed)
	if err != nil {
		return nil, err
	}

	log.Printf("task completion set: taskId=%d completed=%t userId=%d", taskID, completed, userID)
	info := model.TaskInfoFromEntity(updated, nil)
	return &info, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if _, err := s.getMemberTask(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	log.Printf("task deleted: taskId=%d userId=%d", taskID, userID)
	return nil
}

func (s *TaskService) AddTimeInfo(ctx context.Context, userID, taskID int64, req model.CreateTaskTimeRequest) (*model.TaskTimeInfo, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidInput
	}
	if _, err := s.getMemberTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.repo.CreateTaskTimeInfo(ctx, &model.TaskTimeInfo{
		TaskID:    taskID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
}

// getMemberTask - 할 일 조회 + 소속 핀의 멤버십 확인
func (s *TaskService) getMemberTask(ctx context.Context, userID, taskID int64) (*model.Task, error) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if err := s.requireMember(ctx, task.PinID, userID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) requireMember(ctx context.Context, pinID, userID int64) error {
	if _, err := s.repo.GetMember(ctx, pinID, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
