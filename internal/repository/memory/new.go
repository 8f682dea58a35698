package memory

import (
	"sync"
	"time"

	"gig-copilot/internal/model"
	"gig-copilot/internal/repository"
)

type implRepository struct {
	mu     sync.RWMutex
	trips  map[string][]model.Trip
	checks map[string][]model.HealthCheck
	goals  map[string][]model.Goal
	now    func() time.Time
}

// New creates an in-process Repository. Data lives for the process lifetime.
func New() repository.Repository {
	return &implRepository{
		trips:  make(map[string][]model.Trip),
		checks: make(map[string][]model.HealthCheck),
		goals:  make(map[string][]model.Goal),
		now:    time.Now,
	}
}
