package db

import (
	"context"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

const taskColumns = `id, pin_id, title, completed, completed_at, start_date_time, end_date_time, created_at, updated_at`

func (db *Postgres) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	query := `
		INSERT INTO tasks (pin_id, title, start_date_time, end_date_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + taskColumns
	row := db.Pool.QueryRow(ctx, query, task.PinID, task.Title, task.StartDateTime, task.EndDateTime)
	return scanTask(row)
}

func (db *Postgres) GetTaskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(db.Pool.QueryRow(ctx, query, taskID))
}

func (db *Postgres) GetTasksByPinID(ctx context.Context, pinID int64) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE pin_id = $1 ORDER BY created_at`
	rows, err := db.Pool.Query(ctx, query, pinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (db *Postgres) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, start_date_time = $3, end_date_time = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	row := db.Pool.QueryRow(ctx, query, task.ID, task.Title, task.StartDateTime, task.EndDateTime)
	return scanTask(row)
}

// SetTaskCompleted - 완료 처리/취소. 완료 시각은 DB의 NOW() 기준.
func (db *Postgres) SetTaskCompleted(ctx context.Context, taskID int64, completed bool) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET completed = $2,
		    completed_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	return scanTask(db.Pool.QueryRow(ctx, query, taskID, completed))
}

func (db *Postgres) DeleteTask(ctx context.Context, taskID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	return err
}

func (db *Postgres) CreateTaskTimeInfo(ctx context.Context, info *model.TaskTimeInfo) (*model.TaskTimeInfo, error) {
	query := `
		INSERT INTO task_time_infos (task_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, task_id, start_time, end_time, created_at
	`
	var created model.TaskTimeInfo
	err := db.Pool.QueryRow(ctx, query, info.TaskID, info.StartTime, info.EndTime).Scan(
		&created.ID, &created.TaskID, &created.StartTime, &created.EndTime, &created.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (db *Postgres) GetTaskTimeInfos(ctx context.Context, taskID int64) ([]model.TaskTimeInfo, error) {
	query := `
		SELECT id, task_id, start_time, end_time, created_at
		FROM task_time_infos
		WHERE task_id = $1
		ORDER BY start_time
	`
	rows, err := db.Pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []model.TaskTimeInfo
	for rows.Next() {
		var info model.TaskTimeInfo
		if err := rows.Scan(&info.ID, &info.TaskID, &info.StartTime, &info.EndTime, &info.CreatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (db *Postgres) DeleteTaskTimeInfo(ctx context.Context, timeInfoID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM task_time_infos WHERE id = $1`, timeInfoID)
	return err
}

func scanTask(row rowScanner) (*model.Task, error) {
	var task model.Task
	err := row.Scan(
		&task.ID,
		&task.PinID,
		&task.Title,
		&task.Completed,
		&task.CompletedAt,
		&task.StartDateTime,
		&task.EndDateTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
