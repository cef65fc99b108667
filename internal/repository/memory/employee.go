package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/leave-portal/internal/domain/department"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.s.write(ctx, func(d *data) error {
		for _, e := range d.employees {
			if strings.EqualFold(e.Email, newEmployee.Email) {
				return employee.ErrEmailExists
			}
		}
		if newEmployee.ID == "" {
			newEmployee.ID = uuid.NewString()
		}
		now := r.s.now()
		newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
		newEmployee.DepartmentName = nil
		d.employees[newEmployee.ID] = newEmployee
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return newEmployee, nil
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	var found employee.Employee
	err := r.s.read(func(d *data) error {
		e, ok := d.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		found = withDepartment(d, e)
		return nil
	})
	return found, err
}

func (r *employeeRepository) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	var found employee.Employee
	err := r.s.read(func(d *data) error {
		for _, e := range d.employees {
			if strings.EqualFold(e.Email, email) {
				found = withDepartment(d, e)
				return nil
			}
		}
		return employee.ErrEmployeeNotFound
	})
	return found, err
}

func (r *employeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	var list []employee.Employee
	_ = r.s.read(func(d *data) error {
		for _, e := range d.employees {
			list = append(list, withDepartment(d, e))
		}
		return nil
	})
	slices.SortFunc(list, func(a, b employee.Employee) int {
		return cmp.Compare(a.FullName, b.FullName)
	})
	return list, nil
}

func withDepartment(d *data, e employee.Employee) employee.Employee {
	e.DepartmentName = nil
	if e.DepartmentID != nil {
		if dep, ok := d.departments[*e.DepartmentID]; ok {
			name := dep.Name
			e.DepartmentName = &name
		}
	}
	return e
}

type departmentRepository struct {
	s *Store
}

func (r *departmentRepository) Ensure(ctx context.Context, name string) (department.Department, error) {
	var result department.Department
	err := r.s.write(ctx, func(d *data) error {
		for _, dep := range d.departments {
			if dep.Name == name {
				result = dep
				return nil
			}
		}
		d.nextDepartmentID++
		result = department.Department{ID: d.nextDepartmentID, Name: name, CreatedAt: r.s.now()}
		d.departments[result.ID] = result
		return nil
	})
	return result, err
}

func (r *departmentRepository) GetByID(_ context.Context, id int64) (department.Department, error) {
	var result department.Department
	err := r.s.read(func(d *data) error {
		dep, ok := d.departments[id]
		if !ok {
			return department.ErrDepartmentNotFound
		}
		result = dep
		return nil
	})
	return result, err
}

func (r *departmentRepository) List(_ context.Context) ([]department.Department, error) {
	var list []department.Department
	_ = r.s.read(func(d *data) error {
		for _, dep := range d.departments {
			list = append(list, dep)
		}
		return nil
	})
	slices.SortFunc(list, func(a, b department.Department) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return list, nil
}
