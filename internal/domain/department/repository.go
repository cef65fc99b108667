package department

import "context"

type DepartmentRepository interface {
	// Ensure returns the department called name, creating it if needed.
	Ensure(ctx context.Context, name string) (Department, error)
	GetByID(ctx context.Context, id int64) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
