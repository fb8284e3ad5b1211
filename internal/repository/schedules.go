package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

// ReplaceWeeklyAvailability 在一个事务内完成员工每周排班时间的替换式提交：
// 先删除该员工本周所有的草稿记录，再检查新时间段与待审核、已通过记录是否冲突，
// 最后按提交模式插入新记录。事务开始时获取以员工和周为键的咨询锁，
// 串行化同一员工对同一周的并发提交
func (r *Repository) ReplaceWeeklyAvailability(submission *domain.WeeklySubmission) ([]*domain.ScheduleRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT pg_advisory_xact_lock($1, $2)`
	if _, err := tx.ExecContext(ctx, query, int32(submission.StaffID), availability.WeekKey(submission.WeekStart)); err != nil {
		return nil, err
	}

	// 先清理上一次提交留下的草稿，使重复提交是替换而不是累加
	query = `
		DELETE FROM schedules
		WHERE staff_id = $1
			AND schedule_date BETWEEN $2 AND $3
			AND created_by = $4
			AND status = $5
			AND approval_status = $6
	`
	args := []any{submission.StaffID, submission.WeekStart, submission.WeekEnd, domain.CreatedByStaff, domain.ScheduleStatusActive, domain.ApprovalStatusDraft}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	existing, err := r.getBlockingRowsTx(ctx, tx, submission.StaffID, submission.WeekStart, submission.WeekEnd)
	if err != nil {
		return nil, err
	}

	if err := availability.FindConflict(existing, submission.Entries); err != nil {
		return nil, err
	}

	approvalStatus := domain.ApprovalStatusPending
	if submission.Mode == domain.ModeDraft {
		approvalStatus = domain.ApprovalStatusDraft
	}

	rows := make([]*domain.ScheduleRow, 0, len(submission.Entries))
	for _, entry := range submission.Entries {
		query := `
			INSERT INTO schedules (staff_id, schedule_date, start_time, end_time, created_by, status, approval_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, version
		`

		row := &domain.ScheduleRow{
			StaffID:        submission.StaffID,
			ScheduleDate:   entry.ScheduleDate,
			StartTime:      entry.StartTime,
			EndTime:        entry.EndTime,
			CreatedBy:      domain.CreatedByStaff,
			Status:         domain.ScheduleStatusActive,
			ApprovalStatus: approvalStatus,
		}

		args := []any{row.StaffID, row.ScheduleDate, row.StartTime, row.EndTime, row.CreatedBy, row.Status, row.ApprovalStatus}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&row.ID, &row.CreatedAt, &row.Version); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return rows, nil
}

// InsertApprovedScheduleRows 是管理员直接为员工插入已通过的排班记录，
// 与员工提交走相同的锁和冲突检查
func (r *Repository) InsertApprovedScheduleRows(staffID int64, weekStart time.Time, weekEnd time.Time, entries []domain.AvailabilityEntry) ([]*domain.ScheduleRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT pg_advisory_xact_lock($1, $2)`
	if _, err := tx.ExecContext(ctx, query, int32(staffID), availability.WeekKey(weekStart)); err != nil {
		return nil, err
	}

	existing, err := r.getBlockingRowsTx(ctx, tx, staffID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	if err := availability.FindConflict(existing, entries); err != nil {
		return nil, err
	}

	rows := make([]*domain.ScheduleRow, 0, len(entries))
	for _, entry := range entries {
		query := `
			INSERT INTO schedules (staff_id, schedule_date, start_time, end_time, created_by, status, approval_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, version
		`

		row := &domain.ScheduleRow{
			StaffID:        staffID,
			ScheduleDate:   entry.ScheduleDate,
			StartTime:      entry.StartTime,
			EndTime:        entry.EndTime,
			CreatedBy:      domain.CreatedByAdmin,
			Status:         domain.ScheduleStatusActive,
			ApprovalStatus: domain.ApprovalStatusApproved,
		}

		args := []any{row.StaffID, row.ScheduleDate, row.StartTime, row.EndTime, row.CreatedBy, row.Status, row.ApprovalStatus}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&row.ID, &row.CreatedAt, &row.Version); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return rows, nil
}

// getBlockingRowsTx 返回冲突检查需要对照的记录：
// 该员工本周内有效且状态为待审核或已通过的排班记录（草稿已被删除或不参与判定）
func (r *Repository) getBlockingRowsTx(ctx context.Context, tx *sql.Tx, staffID int64, weekStart time.Time, weekEnd time.Time) ([]*domain.ScheduleRow, error) {
	query := `
		SELECT id, staff_id, schedule_date, start_time, end_time, created_by, status, approval_status, created_at, version
		FROM schedules
		WHERE staff_id = $1
			AND schedule_date BETWEEN $2 AND $3
			AND status = $4
			AND approval_status IN ($5, $6)
	`

	args := []any{staffID, weekStart, weekEnd, domain.ScheduleStatusActive, domain.ApprovalStatusPending, domain.ApprovalStatusApproved}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScheduleRows(rows)
}

func (r *Repository) GetScheduleRowsByStaffAndWeek(staffID int64, weekStart time.Time, weekEnd time.Time) ([]*domain.ScheduleRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, staff_id, schedule_date, start_time, end_time, created_by, status, approval_status, created_at, version
		FROM schedules
		WHERE staff_id = $1
			AND schedule_date BETWEEN $2 AND $3
			AND status = $4
		ORDER BY schedule_date, start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, weekStart, weekEnd, domain.ScheduleStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScheduleRows(rows)
}

func (r *Repository) GetPendingScheduleRows(weekStart time.Time, weekEnd time.Time) ([]*domain.ScheduleRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, staff_id, schedule_date, start_time, end_time, created_by, status, approval_status, created_at, version
		FROM schedules
		WHERE schedule_date BETWEEN $1 AND $2
			AND status = $3
			AND approval_status = $4
		ORDER BY staff_id, schedule_date, start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query, weekStart, weekEnd, domain.ScheduleStatusActive, domain.ApprovalStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScheduleRows(rows)
}

// ApproveWeeklySchedule 把员工某一周所有待审核的记录改为已通过，返回受影响的条数
func (r *Repository) ApproveWeeklySchedule(staffID int64, weekStart time.Time, weekEnd time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE schedules
		SET approval_status = $1, version = version + 1
		WHERE staff_id = $2
			AND schedule_date BETWEEN $3 AND $4
			AND status = $5
			AND approval_status = $6
	`

	args := []any{domain.ApprovalStatusApproved, staffID, weekStart, weekEnd, domain.ScheduleStatusActive, domain.ApprovalStatusPending}
	result, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// HasApprovedScheduleCovering 检查员工在某一天是否有一条已通过的排班记录
// 完整覆盖 [startTime, endTime] 这个时间段。
// 时间以补零的 HH:MM 字符串存储，可以直接按字典序比较
func (r *Repository) HasApprovedScheduleCovering(staffID int64, date time.Time, startTime string, endTime string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE staff_id = $1
				AND schedule_date = $2
				AND status = $3
				AND approval_status = $4
				AND start_time <= $5
				AND end_time >= $6
		)
	`

	covered := false
	args := []any{staffID, date, domain.ScheduleStatusActive, domain.ApprovalStatusApproved, startTime, endTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&covered); err != nil {
		return false, err
	}

	return covered, nil
}

func scanScheduleRows(rows *sql.Rows) ([]*domain.ScheduleRow, error) {
	scheduleRows := make([]*domain.ScheduleRow, 0)
	for rows.Next() {
		row := &domain.ScheduleRow{}
		dst := []any{&row.ID, &row.StaffID, &row.ScheduleDate, &row.StartTime, &row.EndTime, &row.CreatedBy, &row.Status, &row.ApprovalStatus, &row.CreatedAt, &row.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		scheduleRows = append(scheduleRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scheduleRows, nil
}
