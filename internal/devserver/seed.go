package devserver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go-jobboard/internal/models"
)

// LoadSeed reads a {"jobs": [...]} file. A missing file is not an error.
func LoadSeed(path string) ([]models.JobRecord, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	jobs, err := models.DecodeJobsResponse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return jobs, nil
}

// Seed adds jobs to an empty store. It returns how many were added.
func Seed(ctx context.Context, store Store, jobs []models.JobRecord) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, job := range jobs {
		if err := store.Add(ctx, job); err != nil {
			return i, err
		}
	}
	return len(jobs), nil
}
