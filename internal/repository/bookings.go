package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

var (
	ErrScheduleNotCovered = errors.New("理疗师在该时间段没有已通过的排班")
	ErrBookingConflict    = errors.New("该理疗师在这个时间段已有其他预约")
)

// CreateBooking 在一个事务内创建预约：先确认理疗师当天有一条已通过的排班记录
// 完整覆盖预约时间段，再确认该时间段没有与其他未取消的预约重叠，最后插入。
// 事务开始时获取以理疗师和周为键的咨询锁，防止并发预约同时通过重叠检查
func (r *Repository) CreateBooking(booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT pg_advisory_xact_lock($1, $2)`
	if _, err := tx.ExecContext(ctx, query, int32(booking.StaffID), availability.WeekKey(booking.BookingDate)); err != nil {
		return err
	}

	query = `
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
	args := []any{booking.StaffID, booking.BookingDate, domain.ScheduleStatusActive, domain.ApprovalStatusApproved, booking.StartTime, booking.EndTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&covered); err != nil {
		return err
	}
	if !covered {
		return ErrScheduleNotCovered
	}

	query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE staff_id = $1
				AND booking_date = $2
				AND status = $3
				AND start_time < $4
				AND end_time > $5
		)
	`
	conflict := false
	args = []any{booking.StaffID, booking.BookingDate, domain.BookingStatusBooked, booking.EndTime, booking.StartTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&conflict); err != nil {
		return err
	}
	if conflict {
		return ErrBookingConflict
	}

	query = `
		INSERT INTO bookings (customer_id, staff_id, service_id, booking_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`
	args = []any{booking.CustomerID, booking.StaffID, booking.ServiceID, booking.BookingDate, booking.StartTime, booking.EndTime, domain.BookingStatusBooked}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt, &booking.Version); err != nil {
		return err
	}
	booking.Status = domain.BookingStatusBooked

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBookingByID(id int64) (*domain.Booking, error) {
	query := `
		SELECT customer_id, staff_id, service_id, booking_date, start_time, end_time, status, reminder_sent_at, created_at, version
		FROM bookings
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	booking := &domain.Booking{
		ID: id,
	}

	dst := []any{&booking.CustomerID, &booking.StaffID, &booking.ServiceID, &booking.BookingDate, &booking.StartTime, &booking.EndTime, &booking.Status, &booking.ReminderSentAt, &booking.CreatedAt, &booking.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Repository) GetBookingsByCustomerID(customerID int64) ([]*domain.Booking, error) {
	query := `
		SELECT id, customer_id, staff_id, service_id, booking_date, start_time, end_time, status, reminder_sent_at, created_at, version
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC, start_time DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) GetAllBookings() ([]*domain.Booking, error) {
	query := `
		SELECT id, customer_id, staff_id, service_id, booking_date, start_time, end_time, status, reminder_sent_at, created_at, version
		FROM bookings
		ORDER BY booking_date DESC, start_time DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) UpdateBooking(booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, reminder_sent_at = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{booking.Status, booking.ReminderSentAt, booking.ID, booking.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&booking.Version); err != nil {
		return err
	}

	return nil
}

// GetBookingsDueReminder 返回开始时间落在 (now, now+lead] 窗口内、
// 还没有发送过提醒的未取消预约
func (r *Repository) GetBookingsDueReminder(now time.Time, lead time.Duration) ([]*domain.Booking, error) {
	query := `
		SELECT id, customer_id, staff_id, service_id, booking_date, start_time, end_time, status, reminder_sent_at, created_at, version
		FROM bookings
		WHERE status = $1
			AND reminder_sent_at IS NULL
			AND booking_date + start_time::time > $2
			AND booking_date + start_time::time <= $3
		ORDER BY booking_date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.BookingStatusBooked, now, now.Add(lead))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) MarkBookingReminded(booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET reminder_sent_at = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	now := time.Now()
	if err := r.dbpool.QueryRowContext(ctx, query, now, booking.ID, booking.Version).Scan(&booking.Version); err != nil {
		return err
	}
	booking.ReminderSentAt = &now

	return nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking := &domain.Booking{}
		dst := []any{&booking.ID, &booking.CustomerID, &booking.StaffID, &booking.ServiceID, &booking.BookingDate, &booking.StartTime, &booking.EndTime, &booking.Status, &booking.ReminderSentAt, &booking.CreatedAt, &booking.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
