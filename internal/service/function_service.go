package service

import (
	"context"

	"anser/pkg/function"
	"anser/pkg/interfaces"
)

// FunctionService serves the two function catalogs: the controller's own
// compiled-in registry and the per-worker lists reported over heartbeats.
type FunctionService struct {
	registry    *function.Registry
	workerFuncs interfaces.WorkerFunctionStore
}

// NewFunctionService creates a new function service
func NewFunctionService(registry *function.Registry, workerFuncs interfaces.WorkerFunctionStore) *FunctionService {
	return &FunctionService{
		registry:    registry,
		workerFuncs: workerFuncs,
	}
}

// ControllerFunctions returns the functions the controller itself provides.
func (s *FunctionService) ControllerFunctions() function.DescriptionMap {
	return s.registry.Functions()
}

// WorkerFunctions returns the catalog a worker last reported. A worker that
// never reported (or is unknown) yields an empty map, not an error.
func (s *FunctionService) WorkerFunctions(ctx context.Context, workerID string) (function.DescriptionMap, error) {
	list, err := s.workerFuncs.Get(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return function.DescriptionMap{}, nil
	}
	return list.Functions, nil
}
