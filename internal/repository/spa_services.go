package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

func (r *Repository) CreateSpaService(service *domain.SpaService) error {
	query := `
		INSERT INTO spa_services (name, description, duration_minutes, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{service.Name, service.Description, service.DurationMinutes, service.Price}
	dst := []any{&service.ID, &service.IsActive, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSpaServiceByID(id int64) (*domain.SpaService, error) {
	query := `
		SELECT name, description, duration_minutes, price, is_active, created_at, version
		FROM spa_services
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	service := &domain.SpaService{
		ID: id,
	}

	dst := []any{&service.Name, &service.Description, &service.DurationMinutes, &service.Price, &service.IsActive, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return service, nil
}

func (r *Repository) GetAllSpaServices() ([]*domain.SpaService, error) {
	query := `
		SELECT id, name, description, duration_minutes, price, is_active, created_at, version
		FROM spa_services
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*domain.SpaService{}
	for rows.Next() {
		var service domain.SpaService
		dst := []any{
			&service.ID,
			&service.Name,
			&service.Description,
			&service.DurationMinutes,
			&service.Price,
			&service.IsActive,
			&service.CreatedAt,
			&service.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) UpdateSpaService(service *domain.SpaService) error {
	query := `
		UPDATE spa_services
		SET
			name = $1,
			description = $2,
			duration_minutes = $3,
			price = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.Price,
		service.IsActive,
		service.ID,
		service.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSpaService(id int64) error {
	query := `
		DELETE FROM spa_services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
