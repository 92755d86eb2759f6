package model

import "time"

// Task - 핀에 연결된 할 일 엔티티
type Task struct {
	ID            int64
	PinID         int64
	Title         string
	Completed     bool
	CompletedAt   *time.Time
	StartDateTime *time.Time
	EndDateTime   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaskTimeInfo - 할 일의 반복 시간 구간
type TaskTimeInfo struct {
	ID        int64
	TaskID    int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

type TaskInfo struct {
	ID            int64              `json:"id"`
	PinID         int64              `json:"pinId"`
	Title         string             `json:"title"`
	Completed     bool               `json:"completed"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
	StartDateTime *time.Time         `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time         `json:"endDateTime,omitempty"`
	TimeInfos     []TaskTimeInfoDto  `json:"timeInfos,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type TaskTimeInfoDto struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func TaskInfoFromEntity(t *Task, times []TaskTimeInfo) TaskInfo {
	info := TaskInfo{
		ID:            t.ID,
		PinID:         t.PinID,
		Title:         t.Title,
		Completed:     t.Completed,
		CompletedAt:   t.CompletedAt,
		StartDateTime: t.StartDateTime,
		EndDateTime:   t.EndDateTime,
		CreatedAt:     t.CreatedAt,
	}
	for _, ti := range times {
		info.TimeInfos = append(info.TimeInfos, TaskTimeInfoDto{
			ID:        ti.ID,
			StartTime: ti.StartTime,
			EndTime:   ti.EndTime,
		})
	}
	return info
}

type CreateTaskRequest struct {
	Title         string     `json:"title" binding:"required,max=200"`
	StartDateTime *time.Time `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime"`
}

type UpdateTaskRequest struct {
	Title         *string    `json:"title"`
	StartDateTime *time.Time `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime"`
}

type CreateTaskTimeRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}
