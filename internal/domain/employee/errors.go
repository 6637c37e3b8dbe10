package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrEmployeeSeparated    = errors.New("employee is separated")
	ErrManagerNotFound      = errors.New("reporting manager not found")
	ErrManagerCycleDetected = errors.New("manager assignment would create a reporting cycle")
)
