package service

import (
	"context"
	"fmt"

	"anser/internal/model"
)

// In-memory stores mirroring the repository contracts, including nil,nil for
// absent rows and idempotent enqueues keyed the same way the MySQL layer keys
// them.

type fakeWorkerStore struct {
	workers map[string]*model.Worker
}

func newFakeWorkerStore() *fakeWorkerStore {
	return &fakeWorkerStore{workers: make(map[string]*model.Worker)}
}

func (s *fakeWorkerStore) Create(_ context.Context, workerID string, status model.WorkerStatus) error {
	s.workers[workerID] = &model.Worker{WorkerID: workerID, Status: status}
	return nil
}

func (s *fakeWorkerStore) Get(_ context.Context, workerID string) (*model.Worker, error) {
	w, ok := s.workers[workerID]
	if !ok {
		return nil, nil
	}
	copied := *w
	return &copied, nil
}

func (s *fakeWorkerStore) List(_ context.Context) ([]*model.Worker, error) {
	out := make([]*model.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		copied := *w
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeWorkerStore) ListIDs(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(s.workers))
	for id := range s.workers {
		out = append(out, id)
	}
	return out, nil
}

func (s *fakeWorkerStore) ListIDsByStatus(_ context.Context, status model.WorkerStatus) ([]string, error) {
	out := make([]string, 0)
	for id, w := range s.workers {
		if w.Status == status {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeWorkerStore) UpdateStatus(_ context.Context, workerID string, from, to model.WorkerStatus) error {
	if w, ok := s.workers[workerID]; ok && w.Status == from {
		w.Status = to
	}
	return nil
}

type fakeHeartbeatStore struct {
	records []*model.HeartbeatRecord
}

func newFakeHeartbeatStore() *fakeHeartbeatStore {
	return &fakeHeartbeatStore{}
}

func (s *fakeHeartbeatStore) Append(_ context.Context, rec *model.HeartbeatRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeHeartbeatStore) Latest(_ context.Context, workerID string) (*model.HeartbeatRecord, error) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].WorkerID == workerID {
			return s.records[i], nil
		}
	}
	return nil, nil
}

func (s *fakeHeartbeatStore) ListByWorker(_ context.Context, workerID string) ([]*model.HeartbeatRecord, error) {
	out := make([]*model.HeartbeatRecord, 0)
	for _, rec := range s.records {
		if rec.WorkerID == workerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeCommandStore struct {
	nextID   int
	commands []model.WorkerCommand
	dedup    map[string]string // dedup key -> command ID
}

func newFakeCommandStore() *fakeCommandStore {
	return &fakeCommandStore{dedup: make(map[string]string)}
}

func (s *fakeCommandStore) EnqueueRefresh(_ context.Context, workerID string, kind model.CommandKind) error {
	key := fmt.Sprintf("%s:%s", kind, workerID)
	if _, exists := s.dedup[key]; exists {
		return nil
	}
	s.nextID++
	cmd := model.WorkerCommand{
		ID:       fmt.Sprintf("cmd-%d", s.nextID),
		WorkerID: workerID,
		Type:     kind,
	}
	s.commands = append(s.commands, cmd)
	s.dedup[key] = cmd.ID
	return nil
}

func (s *fakeCommandStore) EnqueueJobCommand(_ context.Context, cmd *model.WorkerCommand) error {
	key := fmt.Sprintf("%s:%s", cmd.Type, cmd.JobID)
	if _, exists := s.dedup[key]; exists {
		return nil
	}
	s.nextID++
	if cmd.ID == "" {
		cmd.ID = fmt.Sprintf("cmd-%d", s.nextID)
	}
	s.commands = append(s.commands, *cmd)
	s.dedup[key] = cmd.ID
	return nil
}

func (s *fakeCommandStore) ListPending(_ context.Context, workerID string) ([]model.WorkerCommand, error) {
	out := make([]model.WorkerCommand, 0)
	for _, cmd := range s.commands {
		if cmd.WorkerID == workerID {
			out = append(out, cmd)
		}
	}
	return out, nil
}

func (s *fakeCommandStore) HasPending(_ context.Context, workerID string, kind model.CommandKind) (bool, error) {
	for _, cmd := range s.commands {
		if cmd.WorkerID == workerID && cmd.Type == kind {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCommandStore) Ack(_ context.Context, commandID string) error {
	for i, cmd := range s.commands {
		if cmd.ID == commandID {
			s.commands = append(s.commands[:i], s.commands[i+1:]...)
			for key, id := range s.dedup {
				if id == commandID {
					delete(s.dedup, key)
				}
			}
			return nil
		}
	}
	return nil
}

type fakeWorkerFunctionStore struct {
	lists map[string]*model.WorkerFunctionList
}

func newFakeWorkerFunctionStore() *fakeWorkerFunctionStore {
	return &fakeWorkerFunctionStore{lists: make(map[string]*model.WorkerFunctionList)}
}

func (s *fakeWorkerFunctionStore) Upsert(_ context.Context, list *model.WorkerFunctionList) error {
	s.lists[list.WorkerID] = list
	return nil
}

func (s *fakeWorkerFunctionStore) Get(_ context.Context, workerID string) (*model.WorkerFunctionList, error) {
	list, ok := s.lists[workerID]
	if !ok {
		return nil, nil
	}
	return list, nil
}

type fakeSystemInfoStore struct {
	snaps map[string]*model.SystemInfoSnapshot
}

func newFakeSystemInfoStore() *fakeSystemInfoStore {
	return &fakeSystemInfoStore{snaps: make(map[string]*model.SystemInfoSnapshot)}
}

func (s *fakeSystemInfoStore) Save(_ context.Context, snap *model.SystemInfoSnapshot) error {
	s.snaps[snap.WorkerID] = snap
	return nil
}

func (s *fakeSystemInfoStore) Get(_ context.Context, workerID string) (*model.SystemInfoSnapshot, error) {
	snap, ok := s.snaps[workerID]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

type fakeJobStore struct {
	jobs map[string]*model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*model.Job)}
}

func (s *fakeJobStore) Create(_ context.Context, job *model.Job) error {
	s.jobs[job.ID] = job
	return nil
}

func (s *fakeJobStore) Get(_ context.Context, jobID string) (*model.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, nil
	}
	return job, nil
}

func (s *fakeJobStore) UpdateStatus(_ context.Context, jobID string, from, to model.JobStatus) error {
	job, ok := s.jobs[jobID]
	if !ok || job.Status != from {
		return fmt.Errorf("job %s not in status %s", jobID, from)
	}
	job.Status = to
	return nil
}
